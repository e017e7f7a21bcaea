// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run processes in the background
//
// simple framework to control a set of background tasks that obey a
// common shutdown signal
package background

import (
	"sync"
)

// Process - interface for a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle to the set of started processes
type T struct {
	sync.WaitGroup
	s []chan struct{}
}

// Start - start up a set of background processes
// all get the same arg value
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]chan struct{}, len(processes))

	// start each background
	for i, p := range processes {
		shutdown := make(chan struct{})
		register.s[i] = shutdown
		register.Add(1)
		go func(p Process, shutdown <-chan struct{}) {
			defer register.Done()
			p.Run(args, shutdown)
		}(p, shutdown)
	}
	return register
}

// Stop - stop the set of background processes
// does not return until all have terminated
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.s {
		close(shutdown)
	}

	// wait for all to finish
	t.Wait()
}
