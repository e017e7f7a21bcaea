// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"
)

// written by setup; all values shown are the defaults
const defaultConfigurationFile = `-- skillstore.conf  -*- mode: lua -*-

local M = {}

-- all directories and files below are relative to this value
-- "." means the directory the configuration file is in
M.data_directory = "."

-- the record store
M.database = {
    directory = "data",
    name = "skillstore.leveldb",
}

M.logging = {
    directory = "log",
    file = "skillstore.log",
    size = 1048576,
    count = 10,
    console = false,
    levels = {
        DEFAULT = "error",
    },
}

return M
`

func runSetup(c *cli.Context) error {

	w := c.App.Writer
	file := c.GlobalString("config-file")

	// do not overwrite an existing configuration
	if _, err := os.Stat(file); nil == err {
		return fmt.Errorf("not overwriting existing configuration: %q", file)
	}

	if err := ioutil.WriteFile(file, []byte(defaultConfigurationFile), 0600); nil != err {
		return err
	}

	fmt.Fprintf(w, "configuration written to: %q\n", file)
	return nil
}
