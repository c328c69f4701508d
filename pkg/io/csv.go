package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
)

// Columns of the CSV template, in order.
var Columns = []string{"data", "node", "box", "description", "boxtext", "tooltips", "url", "n"}

// ReadCSV decodes a CSV template from r.
//
// ReadCSV returns an error if:
//   - The header lacks the data, boxtext or n column
//   - A row names an unknown metric, node or box
//   - A count is not a non-negative integer
//   - An exclusion table row cannot be parsed ([errors.MalformedExclusionTableError])
//   - A URL is unsafe
//
// Columns are matched by header name, so extra columns and any order are
// accepted. ReadCSV does not close r.
func ReadCSV(r io.Reader) (flow.Input, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return flow.Input{}, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"data", "boxtext", "n"} {
		if _, ok := col[required]; !ok {
			return flow.Input{}, errors.New(errors.ErrCodeInvalidFormat, "CSV header missing column %q", required)
		}
	}

	in := flow.Input{Data: flow.NewData()}
	rawURLs := make(map[string]string)
	urlLines := make(map[string]int)
	seen := make(map[flow.Metric]int)
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return flow.Input{}, fmt.Errorf("line %d: %w", line, err)
		}

		name := field(rec, "data")
		if name == "" {
			continue
		}
		m, err := flow.ParseMetric(name)
		if err != nil {
			return flow.Input{}, fmt.Errorf("line %d: %w", line, err)
		}
		if first, dup := seen[m]; dup {
			return flow.Input{}, errors.New(errors.ErrCodeInvalidInput, "line %d: metric %s already set on line %d", line, m, first)
		}
		seen[m] = line

		if label := field(rec, "boxtext"); label != "" {
			in.Data.Labels[m] = label
		}
		if err := setValue(&in.Data, m, field(rec, "n")); err != nil {
			return flow.Input{}, fmt.Errorf("line %d: %w", line, err)
		}
		if tip := field(rec, "tooltips"); tip != "" {
			if err := setTooltip(&in.Tooltips, field(rec, "node"), tip); err != nil {
				return flow.Input{}, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if url := field(rec, "url"); url != "" {
			box := field(rec, "box")
			if box == "" {
				return flow.Input{}, errors.New(errors.ErrCodeInvalidBox, "line %d: url without box", line)
			}
			prev, dup := rawURLs[box]
			switch {
			case !dup:
				rawURLs[box] = url
				urlLines[box] = line
			case prev != url:
				return flow.Input{}, errors.New(errors.ErrCodeInvalidInput, "line %d: box %s already linked to %s on line %d", line, box, prev, urlLines[box])
			}
		}
	}

	urls, err := flow.ParseURLs(rawURLs)
	if err != nil {
		return flow.Input{}, err
	}
	in.URLs = urls
	return in, nil
}

// ImportCSV reads the CSV template at path.
func ImportCSV(path string) (flow.Input, error) {
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
	return ReadCSV(f)
}

func setValue(d *flow.Data, m flow.Metric, raw string) error {
	switch m.Kind() {
	case flow.KindTable:
		reasons, err := ParseExclusionTable(m, raw)
		if err != nil {
			return err
		}
		if m == flow.DBRExcluded {
			d.DBRExcluded = reasons
		} else {
			d.OtherExcluded = reasons
		}
	case flow.KindCount:
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "count for %q must be a non-negative integer, got %q", m, raw)
		}
		d.Counts[m] = n
	}
	return nil
}

// ParseExclusionTable parses "reason, n; reason, n" into reasons, keeping
// their order. The count is taken after the last comma so reasons may
// contain commas themselves. An empty string is an empty table.
func ParseExclusionTable(m flow.Metric, raw string) ([]flow.Reason, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out []flow.Reason
	for i, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		malformed := func(cause error) error {
			return &errors.MalformedExclusionTableError{Metric: string(m), Row: i + 1, Cause: cause}
		}

		cut := strings.LastIndex(part, ",")
		if cut < 0 {
			return nil, malformed(fmt.Errorf("expected \"reason, n\", got %q", part))
		}
		reason := strings.TrimSpace(part[:cut])
		if reason == "" {
			return nil, malformed(fmt.Errorf("empty reason in %q", part))
		}
		n, err := strconv.Atoi(strings.TrimSpace(part[cut+1:]))
		if err != nil {
			return nil, malformed(err)
		}
		if n < 0 {
			return nil, malformed(fmt.Errorf("negative count %d", n))
		}
		out = append(out, flow.Reason{Reason: reason, Count: n})
	}
	return out, nil
}

func setTooltip(t *flow.Tooltips, node, tip string) error {
	id := flow.NodeID(strings.TrimPrefix(strings.ToLower(node), "node"))
	i := id.Index()
	if i < 1 || i > len(t) {
		return errors.New(errors.ErrCodeInvalidInput, "tooltip for unknown node %q", node)
	}
	t[i-1] = tip
	return nil
}
