// Copyright 2019 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package meta

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Provider can construct new metadata objects.
type Provider struct {
	Help string
	// New must return a pointer so that configuration can be decoded
	// into it.
	New func() interface{}
}

// Providers defines a lookup map of providers.
type Providers map[string]*Provider

// Instantiate constructs the named metadata object and decodes the
// JSON configuration, if any, into it.
func (p Providers) Instantiate(name, config string) (interface{}, error) {
	ret, err := p.newInstance(name)
	if err != nil {
		return nil, err
	}
	if config = strings.TrimSpace(config); config != "" {
		// Disallow unknown fields to help with typos.
		d := json.NewDecoder(strings.NewReader(config))
		d.DisallowUnknownFields()
		if err := d.Decode(ret); err != nil {
			return nil, errors.Wrapf(err, "configuring %s", name)
		}
	}
	return ret, nil
}

// Decode constructs the named metadata object and decodes the YAML
// configuration, if any, into it.
func (p Providers) Decode(name string, config *yaml.Node) (interface{}, error) {
	ret, err := p.newInstance(name)
	if err != nil {
		return nil, err
	}
	if config != nil && config.Kind != 0 {
		// Round-trip the node so that unknown fields are rejected.
		raw, err := yaml.Marshal(config)
		if err != nil {
			return nil, errors.Wrapf(err, "configuring %s", name)
		}
		d := yaml.NewDecoder(bytes.NewReader(raw))
		d.KnownFields(true)
		if err := d.Decode(ret); err != nil {
			return nil, errors.Wrapf(err, "configuring %s", name)
		}
	}
	return ret, nil
}

func (p Providers) newInstance(name string) (interface{}, error) {
	provider := p[name]
	if provider == nil {
		return nil, errors.Errorf("cannot find contract named %s", name)
	}
	return provider.New(), nil
}
