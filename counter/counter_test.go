// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/skillstore/counter"
)

// test incrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}
}

// increments from multiple goroutines must not be lost
func TestCounterConcurrent(t *testing.T) {

	const goroutines = 10
	const perGoroutine = 1000

	var c1 counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j += 1 {
				c1.Increment()
			}
		}()
	}
	wg.Wait()

	if goroutines*perGoroutine != c1.Uint64() {
		t.Errorf("counter expected: %d  actual: %d", goroutines*perGoroutine, c1.Uint64())
	}
}
