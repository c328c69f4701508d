package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
)

// LoadStyle reads a style file. The format is chosen by extension:
// .toml for TOML, .yaml or .yml for YAML.
func LoadStyle(path string) (flow.Style, error) {
	if err := errors.ValidatePath(path); err != nil {
		return flow.Style{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return flow.Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return flow.Style{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return DecodeStyle(data, "toml")
	case ".yaml", ".yml":
		return DecodeStyle(data, "yaml")
	default:
		return flow.Style{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported style file extension %q (want .toml, .yaml or .yml)", ext)
	}
}

// DecodeStyle decodes a TOML or YAML style document, fills defaults and
// validates the result. Unknown keys are rejected.
func DecodeStyle(data []byte, format string) (flow.Style, error) {
	var s flow.Style
	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return flow.Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "decode toml style")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return flow.Style{}, errors.New(errors.ErrCodeInvalidStyle, "unknown style key %q", undecoded[0].String())
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return flow.Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "decode yaml style")
		}
	default:
		return flow.Style{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported style format %q", format)
	}

	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return flow.Style{}, err
	}
	return s, nil
}
