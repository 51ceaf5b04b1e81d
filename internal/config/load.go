package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParams wraps every parameter validation failure.
var ErrInvalidParams = errors.New("invalid parameters")

// LoadFile overlays a YAML parameter file onto the defaults and validates
// the result. Groups and fields absent from the file keep their defaults.
func LoadFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML parameter data onto the defaults and validates it.
func Parse(data []byte) (Params, error) {
	p := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
