// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/skillstore/fault"
	"github.com/bitmark-inc/skillstore/records"
	"github.com/bitmark-inc/skillstore/storage"
)

func runImport(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("file")
	if "" == fileName {
		return fmt.Errorf("an input file is required")
	}

	f, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.UseNumber()
	imported := map[string][]map[string]interface{}{}
	if err := decoder.Decode(&imported); nil != err {
		return err
	}

	// users and skills before the junction so references resolve
	total := 0
	for _, collection := range m.store.CollectionNames() {
		for _, doc := range imported[collection] {
			if err := importDocument(m, collection, doc); nil != err {
				return err
			}
			total += 1
		}
	}

	fmt.Fprintf(m.w, "imported: %d\n", total)
	return nil
}

// store one exported document, keeping its original identifier when
// it carries one
func importDocument(m *metadata, collection string, doc map[string]interface{}) error {

	if err := validateDocument(collection, doc); nil != err {
		return fmt.Errorf("%s: invalid record: %s", collection, err)
	}

	keyField, _ := m.store.KeyField(collection)

	id, hasID := docID(doc, keyField)
	if _, present := doc[keyField]; present && (!hasID || 0 == id) {
		return fmt.Errorf("%s: invalid %s: %v", collection, keyField, doc[keyField])
	}

	if 0 == id {
		if _, ok := m.store.Create(collection, doc); !ok {
			return fmt.Errorf("%s: import create failed", collection)
		}
		return nil
	}

	delete(doc, keyField)
	factory := func() map[string]interface{} {
		return map[string]interface{}{}
	}
	if _, ok := m.store.Update(collection, id, doc, factory); !ok {
		return fmt.Errorf("%s: import of id: %d failed", collection, id)
	}
	return nil
}

// each record must decode into its typed form and pass its checks
func validateDocument(collection string, doc map[string]interface{}) error {
	switch collection {
	case storage.Users:
		u, err := records.UserFromDocument(doc)
		if nil != err {
			return err
		}
		return u.Validate()
	case storage.Skills:
		s, err := records.SkillFromDocument(doc)
		if nil != err {
			return err
		}
		return s.Validate()
	case storage.UserSkills:
		us, err := records.UserSkillFromDocument(doc)
		if nil != err {
			return err
		}
		return us.Validate()
	default:
		return fault.ErrUnknownCollection
	}
}
