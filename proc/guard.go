// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package proc

import "sync"

// guard enforces "at most one live Proc handle per process"
// (spec.md §9 Open Question 2) regardless of whether callers route
// through Open/OpenFile directly or hold their handle across
// goroutines.
var guard struct {
	mu   sync.Mutex
	open bool
}

func claim() error {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.open {
		return ErrAlreadyOpen
	}
	guard.open = true
	return nil
}

func release() {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.open = false
}
