// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "github.com/ef-ds/deque"

// tokenQueue holds the tokens not yet classified. The front of the queue
// is the current position; matched tokens are popped and unbundled short
// options are rewritten in place so the next iteration sees them.
type tokenQueue struct {
	q       *deque.Deque
	skipped []string
}

func newTokenQueue(tokens []string) *tokenQueue {
	q := deque.New()
	for _, t := range tokens {
		q.PushBack(t)
	}
	return &tokenQueue{q: q}
}

func (t *tokenQueue) len() int {
	return t.q.Len()
}

// peek returns the current token without consuming it.
func (t *tokenQueue) peek() (string, bool) {
	v, ok := t.q.Front()
	if !ok {
		return "", false
	}
	return v.(string), true
}

// pop consumes the current token.
func (t *tokenQueue) pop() (string, bool) {
	v, ok := t.q.PopFront()
	if !ok {
		return "", false
	}
	return v.(string), true
}

// replace swaps the current token for s without advancing.
func (t *tokenQueue) replace(s string) {
	t.q.PopFront()
	t.q.PushFront(s)
}

// skip moves the current token to the skipped list.
func (t *tokenQueue) skip() {
	if s, ok := t.pop(); ok {
		t.skipped = append(t.skipped, s)
	}
}
