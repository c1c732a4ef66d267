// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

// notifier delivers events to registered observers in registration
// order, synchronously.
type notifier struct {
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func()
}

// add registers fn and returns a function that removes it again.
// Removing twice is harmless.
func (n *notifier) add(fn func()) (remove func()) {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier) emit() {
	// Copy so observers may unsubscribe during delivery.
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	for _, s := range subs {
		s.fn()
	}
}

// resizeNotifier is a notifier whose observers receive the new viewport
// size.
type resizeNotifier struct {
	nextID int
	subs   []resizeSubscription
}

type resizeSubscription struct {
	id int
	fn func(w, h uint32)
}

func (n *resizeNotifier) add(fn func(w, h uint32)) (remove func()) {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, resizeSubscription{id: id, fn: fn})
	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *resizeNotifier) emit(w, h uint32) {
	subs := make([]resizeSubscription, len(n.subs))
	copy(subs, n.subs)
	for _, s := range subs {
		s.fn(w, h)
	}
}
