// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the REPL's display preferences, addressable by an
// unambiguous prefix of their field name.
type settings struct {
	HexMode     bool `doc:"show symbol values in hexadecimal"`
	DisasmLines int  `doc:"default instruction count for the disassemble command"`
}

func newSettings() *settings {
	return &settings{
		HexMode:     true,
		DisasmLines: 10,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		fmt.Fprintf(w, "    %-16s %-10v (%s)\n", f.name, v, f.doc)
	}
}

func (s *settings) Set(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	field := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Bool:
		switch strings.ToLower(value) {
		case "true", "on", "1":
			field.SetBool(true)
		case "false", "off", "0":
			field.SetBool(false)
		default:
			return errors.New("expected true/false, on/off, or 1/0")
		}
	case reflect.Int:
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return errors.New("expected an integer")
		}
		field.SetInt(int64(n))
	default:
		return errors.New("unsupported setting type")
	}
	return nil
}
