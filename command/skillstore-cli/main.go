// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/skillstore/configuration"
	"github.com/bitmark-inc/skillstore/optimistic"
	"github.com/bitmark-inc/skillstore/storage"
)

type metadata struct {
	file        string
	config      *configuration.Configuration
	store       *storage.Store
	coordinator *optimistic.Coordinator
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "skillstore-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "skillstore.conf",
			Usage: " configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "setup",
			Usage:  "write a commented default configuration file",
			Action: runSetup,
		},
		{
			Name:      "add-user",
			Usage:     "store a new user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*user name `STRING`",
				},
				cli.StringFlag{
					Name:  "email, e",
					Value: "",
					Usage: "*user email `STRING`",
				},
			},
			Action: runAddUser,
		},
		{
			Name:      "add-skill",
			Usage:     "store a new skill",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*skill name `STRING`",
				},
				cli.StringFlag{
					Name:  "level, l",
					Value: "beginner",
					Usage: " skill level `LEVEL` [beginner|intermediate|advanced|expert]",
				},
				cli.StringFlag{
					Name:  "category, C",
					Value: "",
					Usage: "*skill category `STRING`",
				},
			},
			Action: runAddSkill,
		},
		{
			Name:      "assign",
			Usage:     "link a skill to a user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "user, u",
					Value: 0,
					Usage: "*user id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "skill, s",
					Value: 0,
					Usage: "*skill id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "proficiency, p",
					Value: "learning",
					Usage: " proficiency `LEVEL` [learning|familiar|proficient|mastered]",
				},
			},
			Action: runAssign,
		},
		{
			Name:      "unassign",
			Usage:     "remove a user skill link",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "link, l",
					Value: 0,
					Usage: "*user skill link id `NUMBER`",
				},
			},
			Action: runUnassign,
		},
		{
			Name:      "list",
			Usage:     "list the records of one collection",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, C",
					Value: "",
					Usage: "*collection `NAME` [users|skills|userskills]",
				},
			},
			Action: runList,
		},
		{
			Name:      "export",
			Usage:     "write all collections as JSON",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " output `FILE` (default stdout)",
				},
			},
			Action: runExport,
		},
		{
			Name:      "import",
			Usage:     "load collections from a JSON export",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*input `FILE`",
				},
			},
			Action: runImport,
		},
		{
			Name:   "seed",
			Usage:  "store a small set of sample records",
			Action: runSeed,
		},
		{
			Name:  "version",
			Usage: "display skillstore-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the configuration, logging and the store
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// these commands do not need the store; setup creates the
		// configuration the other commands read
		command := c.Args().Get(0)
		switch command {
		case "version", "help", "h", "setup", "":
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file)
		if nil != err {
			return fmt.Errorf("configuration: %q error: %s", file, err)
		}

		// the log and database directories are created on demand so
		// setup works on a fresh data directory
		if err := os.MkdirAll(config.Logging.Directory, 0700); nil != err {
			return err
		}
		if err := os.MkdirAll(config.Database.Directory, 0700); nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return fmt.Errorf("logger setup failed with error: %s", err)
		}

		store, err := storage.Initialise(config.DatabasePath())
		if nil != err {
			return fmt.Errorf("storage initialise error: %s", err)
		}

		coordinator, err := optimistic.New(store)
		if nil != err {
			store.Finalise()
			return fmt.Errorf("coordinator initialise error: %s", err)
		}

		c.App.Metadata["config"] = &metadata{
			file:        file,
			config:      config,
			store:       store,
			coordinator: coordinator,
			verbose:     verbose,
			e:           e,
			w:           w,
		}
		return nil
	}

	// release the store
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		m.coordinator.Finalise()
		m.store.Finalise()
		logger.Finalise()
		return nil
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}
