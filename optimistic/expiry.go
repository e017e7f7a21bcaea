// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package optimistic

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// how often the sweep runs relative to the configured lifetime
const sweepDivisor = 4

// background sweep for settled entries that were never cleared
type expiryData struct {
	coordinator *Coordinator
	log         *logger.L
}

// Run - drop settled entries older than the configured lifetime
//
// in flight entries are never swept; their storage call has not
// settled yet and the caller still needs the status
func (e *expiryData) Run(args interface{}, shutdown <-chan struct{}) {

	log := e.log
	log.Info("starting…")

	interval := e.coordinator.expireAfter / sweepDivisor
	if interval < time.Second {
		interval = time.Second
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			e.sweep()
		}
	}
	log.Info("shutting down…")
}

func (e *expiryData) sweep() {
	c := e.coordinator
	cutoff := time.Now().Add(-c.expireAfter)

	c.Lock()
	for operationID, entry := range c.entries {
		if entry.settledAt.IsZero() || entry.settledAt.After(cutoff) {
			continue
		}
		e.log.Debugf("expire: %s %s on %q", operationID, entry.Action, entry.Collection)
		delete(c.entries, operationID)
	}
	c.Unlock()
}
