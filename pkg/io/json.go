package io

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
)

// ReadJSON decodes a flow input object from r:
//
//	{
//	  "data": {
//	    "counts": {"records_screened": 1288, ...},
//	    "labels": {"records_screened": "Records screened", ...},
//	    "dbr_excluded": [{"reason": "Wrong population", "count": 40}]
//	  },
//	  "tooltips": ["", "Studies from the 2019 review", ...],
//	  "urls": {"box1": "previous.html"}
//	}
//
// Metric and box names are validated; unknown fields are rejected.
func ReadJSON(r io.Reader) (flow.Input, error) {
	var raw struct {
		Data     flow.Data         `json:"data"`
		Tooltips []string          `json:"tooltips"`
		URLs     map[string]string `json:"urls"`
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return flow.Input{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode input")
	}

	in := flow.Input{Data: raw.Data}
	if in.Data.Counts == nil {
		in.Data.Counts = make(map[flow.Metric]int)
	}
	if in.Data.Labels == nil {
		in.Data.Labels = make(map[flow.Metric]string)
	}
	for m := range in.Data.Labels {
		if !m.Valid() {
			return flow.Input{}, errors.New(errors.ErrCodeInvalidMetric, "unknown metric %q", m)
		}
	}
	if err := in.Data.Validate(); err != nil {
		return flow.Input{}, err
	}

	tips, err := flow.ParseTooltips(raw.Tooltips)
	if err != nil {
		return flow.Input{}, err
	}
	in.Tooltips = tips

	urls, err := flow.ParseURLs(raw.URLs)
	if err != nil {
		return flow.Input{}, err
	}
	in.URLs = urls
	return in, nil
}

// ImportJSON reads a flow input object from the file at path.
func ImportJSON(path string) (flow.Input, error) {
	if err := errors.ValidatePath(path); err != nil {
		return flow.Input{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return flow.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return flow.Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes an assembled diagram as indented JSON.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes an assembled diagram to a JSON file at path.
func ExportJSON(d *diagram.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
