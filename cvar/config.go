// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig sets cvars from a YAML mapping of cvar name to value:
//
//	host_timescale: 0.5
//	developer: 1
//
// All names must be registered. Nothing is changed if any entry is bad.
func LoadConfig(r io.Reader) error {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, "config")
	}
	type set struct {
		cv    *Cvar
		value string
	}
	var sets []set
	for name, n := range doc {
		cv, ok := Get(name)
		if !ok {
			return errors.Errorf("config: unknown cvar %q (line %d)", name, n.Line)
		}
		if n.Kind != yaml.ScalarNode {
			return errors.Errorf("config: %s: value is not a scalar (line %d)", name, n.Line)
		}
		sets = append(sets, set{cv, n.Value})
	}
	for _, s := range sets {
		s.cv.SetByString(s.value)
	}
	return nil
}

func LoadConfigFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()
	return errors.Wrap(LoadConfig(f), path)
}

// WriteConfig writes all archived cvars that differ from their default
func WriteConfig(w io.Writer) error {
	doc := make(map[string]string)
	for _, cv := range All() {
		if cv.Archive() && cv.String() != cv.defaultValue {
			doc[cv.Name()] = cv.String()
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return errors.Wrap(enc.Encode(doc), "config")
}
