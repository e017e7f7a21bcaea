// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection := c.String("collection")
	if _, ok := m.store.KeyField(collection); !ok {
		return fmt.Errorf("collection: %q can only be one of: %v", collection, m.store.CollectionNames())
	}

	docs, ok := m.store.GetAll(collection)
	if !ok {
		return fmt.Errorf("list of %q failed", collection)
	}

	return printJson(m.w, docs)
}
