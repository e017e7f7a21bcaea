// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

func runExport(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	export := map[string][]map[string]interface{}{}
	for _, collection := range m.store.CollectionNames() {
		docs, ok := m.store.GetAll(collection)
		if !ok {
			return fmt.Errorf("export of %q failed", collection)
		}
		export[collection] = docs
	}

	out := io.Writer(m.w)
	fileName := c.String("file")
	if "" != fileName {
		f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if nil != err {
			return err
		}
		defer f.Close()
		out = f
	}

	return printJson(out, export)
}
