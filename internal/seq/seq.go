// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package seq implements a double-ended point sequence that tracks where
// mutations happened since the last GPU synchronization.
//
// The sequence partitions its elements into three regions:
//
//	[0, pushedFront)                unsynced front pushes
//	[pushedFront, len-pushedBack)   synced middle (committed to the GPU)
//	[len-pushedBack, len)           unsynced back pushes
//
// Every mutation updates exactly one of the four counters. Structural edits
// inside the synced middle are rejected: the GPU copy of that region must
// stay byte-stable until the next sync.
package seq

import (
	"errors"
	"fmt"
)

// ErrInvalidMutation is returned when a splice would insert into or carve a
// hole out of the synced middle region.
var ErrInvalidMutation = errors.New("seq: invalid mutation in synced region")

// Point is one sample: X is the domain coordinate (for example time),
// Y the value. Points are immutable once stored.
type Point struct {
	X, Y float64
}

// Buffer is an ordered, index-addressable point sequence with change
// tracking. The zero value is an empty, fully synced buffer.
//
// Buffer is not safe for concurrent use; the chart runs single-threaded.
type Buffer struct {
	points []Point

	// syncedLen is the length observed at the last Sync call.
	syncedLen int

	pushedFront int
	pushedBack  int
	popedFront  int
	popedBack   int
}

// Len returns the number of points currently stored.
func (b *Buffer) Len() int { return len(b.points) }

// At returns the point at index i.
func (b *Buffer) At(i int) Point { return b.points[i] }

// XAt returns the domain coordinate of the point at index i.
func (b *Buffer) XAt(i int) float64 { return b.points[i].X }

// First returns the first point, or false if the buffer is empty.
func (b *Buffer) First() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[0], true
}

// Last returns the last point, or false if the buffer is empty.
func (b *Buffer) Last() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[len(b.points)-1], true
}

// PushBack appends points at the back.
func (b *Buffer) PushBack(pts ...Point) {
	b.points = append(b.points, pts...)
	b.pushedBack += len(pts)
	b.check()
}

// PushFront prepends points at the front. The points keep their given order.
func (b *Buffer) PushFront(pts ...Point) {
	if len(pts) == 0 {
		return
	}
	b.points = append(append(make([]Point, 0, len(pts)+len(b.points)), pts...), b.points...)
	b.pushedFront += len(pts)
	b.check()
}

// PopBack removes and returns the last point. Removing an unsynced push
// cancels it; removing a synced point records a back pop.
func (b *Buffer) PopBack() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	p := b.points[len(b.points)-1]
	b.points = b.points[:len(b.points)-1]
	if b.pushedBack > 0 {
		b.pushedBack--
	} else {
		b.popedBack++
	}
	b.check()
	return p, true
}

// PopFront removes and returns the first point.
func (b *Buffer) PopFront() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	p := b.points[0]
	b.points = b.points[1:]
	if b.pushedFront > 0 {
		b.pushedFront--
	} else {
		b.popedFront++
	}
	b.check()
	return p, true
}

// Splice replaces the range [start, start+deleteCount) with items and returns
// the removed points. Deletions must eat from a region edge inward:
//
//   - inside the unsynced front region they cancel front pushes;
//   - starting exactly at the synced region's first element they become
//     front pops;
//   - strictly inside the synced middle they fail, unless the deleted range
//     extends all the way to the synced region's end, in which case they
//     become back pops;
//   - inside the unsynced back region they cancel back pushes.
//
// Insertions at or before the synced region count as front pushes,
// at or after its end as back pushes, and strictly inside fail.
// On error the buffer is left unchanged.
func (b *Buffer) Splice(start, deleteCount int, items ...Point) ([]Point, error) {
	n := len(b.points)
	if start < 0 || start > n {
		return nil, fmt.Errorf("seq: splice start %d out of range [0,%d]", start, n)
	}
	if deleteCount < 0 || start+deleteCount > n {
		return nil, fmt.Errorf("seq: splice delete count %d out of range at %d", deleteCount, start)
	}

	syncedStart := b.pushedFront
	syncedEnd := n - b.pushedBack
	delEnd := start + deleteCount

	// Attribute the deleted range piecewise to the three regions before
	// touching the slice, so a rejected splice has no effect.
	delFront := overlap(start, delEnd, 0, syncedStart)
	delSynced := overlap(start, delEnd, syncedStart, syncedEnd)
	delBack := overlap(start, delEnd, syncedEnd, n)

	var popsFront, popsBack int
	if delSynced > 0 {
		switch {
		case max(start, syncedStart) == syncedStart:
			// Eats the synced region from its front edge.
			popsFront = delSynced
		case min(delEnd, syncedEnd) == syncedEnd:
			// Eats the synced region up to its tail.
			popsBack = delSynced
		default:
			return nil, fmt.Errorf("%w: delete [%d,%d) carves hole in synced [%d,%d)",
				ErrInvalidMutation, start, delEnd, syncedStart, syncedEnd)
		}
	}

	if len(items) > 0 {
		// Insertion happens at start after the deletion. The synced region
		// shrinks by the synced points removed.
		remainStart := syncedStart - delFront
		remainEnd := remainStart + (syncedEnd - syncedStart) - popsFront - popsBack
		insertAt := start
		if insertAt > remainStart && insertAt < remainEnd {
			return nil, fmt.Errorf("%w: insert at %d inside synced [%d,%d)",
				ErrInvalidMutation, insertAt, remainStart, remainEnd)
		}
	}

	removed := make([]Point, deleteCount)
	copy(removed, b.points[start:delEnd])
	rest := make([]Point, 0, n-deleteCount+len(items))
	rest = append(rest, b.points[:start]...)
	rest = append(rest, items...)
	rest = append(rest, b.points[delEnd:]...)
	b.points = rest

	b.pushedFront -= delFront
	b.pushedBack -= delBack
	b.popedFront += popsFront
	b.popedBack += popsBack

	if len(items) > 0 {
		remainStart := b.pushedFront
		if start <= remainStart {
			b.pushedFront += len(items)
		} else {
			b.pushedBack += len(items)
		}
	}
	b.check()
	return removed, nil
}

// Sync marks the current state as the GPU-committed baseline and zeroes all
// four counters.
func (b *Buffer) Sync() {
	b.pushedFront = 0
	b.pushedBack = 0
	b.popedFront = 0
	b.popedBack = 0
	b.syncedLen = len(b.points)
}

// PushedFront returns the number of unsynced front pushes.
func (b *Buffer) PushedFront() int { return b.pushedFront }

// PushedBack returns the number of unsynced back pushes.
func (b *Buffer) PushedBack() int { return b.pushedBack }

// PopedFront returns the number of synced points removed from the front.
func (b *Buffer) PopedFront() int { return b.popedFront }

// PopedBack returns the number of synced points removed from the back.
func (b *Buffer) PopedBack() int { return b.popedBack }

// check verifies the length bookkeeping after a mutation. A failure is a
// defect in Buffer itself, not a caller error.
func (b *Buffer) check() {
	want := b.syncedLen + b.pushedFront + b.pushedBack - b.popedFront - b.popedBack
	if len(b.points) != want {
		panic(fmt.Sprintf("seq: length %d does not match counters (want %d: synced=%d +f%d +b%d -f%d -b%d)",
			len(b.points), want, b.syncedLen, b.pushedFront, b.pushedBack, b.popedFront, b.popedBack))
	}
}

// overlap returns the length of the intersection of [a0,a1) and [b0,b1).
func overlap(a0, a1, b0, b1 int) int {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
