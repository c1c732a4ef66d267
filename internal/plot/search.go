// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plot

import "sort"

// domainSearch returns the smallest index in [0, n) whose key is >= target,
// or n when no key qualifies. Keys must be sorted ascending; key(i) reports
// the domain coordinate at index i.
func domainSearch(n int, target float64, key func(int) float64) int {
	return sort.Search(n, func(i int) bool { return key(i) >= target })
}
