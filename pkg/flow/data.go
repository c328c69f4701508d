package flow

import (
	"maps"
	"slices"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/text"
)

// Reason is one (reason, count) row of an exclusion table.
type Reason = text.Reason

// Data holds the counts and texts of one flow diagram.
//
// Data is passed by value through the pipeline and never mutated after
// loading; use [Data.Clone] before changing a copy.
type Data struct {
	Counts map[Metric]int    `json:"counts"`
	Labels map[Metric]string `json:"labels"`

	// Exclusion tables, rendered one reason per line in this order.
	DBRExcluded   []Reason `json:"dbr_excluded,omitempty"`
	OtherExcluded []Reason `json:"other_excluded,omitempty"`
}

// NewData returns empty Data with initialized maps.
func NewData() Data {
	return Data{
		Counts: make(map[Metric]int),
		Labels: make(map[Metric]string),
	}
}

// Count returns the count of m and whether it is present.
func (d Data) Count(m Metric) (int, bool) {
	n, ok := d.Counts[m]
	return n, ok
}

// Label returns the label of m. Empty labels count as missing.
func (d Data) Label(m Metric) (string, bool) {
	s, ok := d.Labels[m]
	return s, ok && s != ""
}

// Reasons returns the exclusion table stored under m.
func (d Data) Reasons(m Metric) []Reason {
	switch m {
	case DBRExcluded:
		return d.DBRExcluded
	case OtherExcluded:
		return d.OtherExcluded
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	return Data{
		Counts:        maps.Clone(d.Counts),
		Labels:        maps.Clone(d.Labels),
		DBRExcluded:   slices.Clone(d.DBRExcluded),
		OtherExcluded: slices.Clone(d.OtherExcluded),
	}
}

// WithDefaultLabels returns a copy of d where every missing label is taken
// from [DefaultLabels]. Counts are never defaulted.
func (d Data) WithDefaultLabels() Data {
	out := d.Clone()
	if out.Labels == nil {
		out.Labels = make(map[Metric]string)
	}
	for m, label := range DefaultLabels() {
		if _, ok := out.Label(m); !ok {
			out.Labels[m] = label
		}
	}
	return out
}

// Validate checks the rules that hold regardless of variant: counts and
// exclusion rows are non-negative and every key is a known metric.
func (d Data) Validate() error {
	for _, m := range slices.Sorted(maps.Keys(d.Counts)) {
		if !m.Valid() {
			return errors.New(errors.ErrCodeInvalidMetric, "unknown metric %q", m)
		}
		if d.Counts[m] < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative count for %q: %d", m, d.Counts[m])
		}
	}
	for _, m := range []Metric{DBRExcluded, OtherExcluded} {
		for i, r := range d.Reasons(m) {
			if r.Count < 0 {
				return &errors.MalformedExclusionTableError{
					Metric: string(m),
					Row:    i + 1,
					Cause:  errors.New(errors.ErrCodeInvalidInput, "negative count %d", r.Count),
				}
			}
			if r.Reason == "" {
				return &errors.MalformedExclusionTableError{
					Metric: string(m),
					Row:    i + 1,
					Cause:  errors.New(errors.ErrCodeInvalidInput, "empty reason"),
				}
			}
		}
	}
	return nil
}

// DefaultLabels returns the English box texts of the PRISMA 2020 template.
func DefaultLabels() map[Metric]string {
	return map[Metric]string{
		PreviousStudies:        "Studies included in previous version of review",
		PreviousReports:        "Reports of studies included in previous version of review",
		DatabaseResults:        "Databases",
		RegisterResults:        "Registers",
		WebsiteResults:         "Websites",
		OrganisationResults:    "Organisations",
		CitationsResults:       "Citation searching",
		Duplicates:             "Duplicate records removed",
		ExcludedAutomatic:      "Records marked as ineligible by automation tools",
		ExcludedOther:          "Records removed for other reasons",
		RecordsScreened:        "Records screened",
		RecordsExcluded:        "Records excluded",
		DBRSoughtReports:       "Reports sought for retrieval",
		DBRNotRetrieved:        "Reports not retrieved",
		OtherSoughtReports:     "Reports sought for retrieval",
		OtherNotRetrieved:      "Reports not retrieved",
		DBRAssessed:            "Reports assessed for eligibility",
		OtherAssessed:          "Reports assessed for eligibility",
		DBRExcluded:            "Reports excluded:",
		OtherExcluded:          "Reports excluded:",
		NewStudies:             "New studies included in review",
		NewReports:             "Reports of new included studies",
		TotalStudies:           "Total studies included in review",
		TotalReports:           "Reports of total included studies",
		PrevStudHeader:         "Previous studies",
		NewStudHeader:          "Identification of new studies via databases and registers",
		OthStudHeader:          "Identification of new studies via other methods",
		IdentificationRail:     "Identification",
		ScreeningRail:          "Screening",
		IncludedRail:           "Included",
		DBRIdentified:          "Records identified from:",
		RemovedBeforeScreening: "Records removed before screening:",
		OtherIdentified:        "Records identified from:",
	}
}

// Tooltips holds one optional tooltip per numbered node. Slot i belongs to
// node i+1; the last three slots are the identification, screening and
// included rails.
type Tooltips [22]string

// ParseTooltips builds Tooltips from an ordered list. Missing trailing
// entries stay empty; more than 22 entries is an error.
func ParseTooltips(values []string) (Tooltips, error) {
	var t Tooltips
	if len(values) > len(t) {
		return t, errors.New(errors.ErrCodeInvalidInput, "too many tooltips: %d (max %d)", len(values), len(t))
	}
	copy(t[:], values)
	return t, nil
}

// For returns the tooltip of id, or "" for synthetic nodes.
func (t Tooltips) For(id NodeID) string {
	i := id.Index()
	if i < 1 || i > len(t) {
		return ""
	}
	return t[i-1]
}

// URLs maps boxes to hyperlink targets. Boxes without an entry get no link.
type URLs map[BoxName]string

// ParseURLs validates box names and targets. Empty targets are dropped.
func ParseURLs(raw map[string]string) (URLs, error) {
	out := make(URLs, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		target := raw[key]
		if target == "" {
			continue
		}
		box, err := ParseBoxName(key)
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateURL(target); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "url for %s", key)
		}
		out[box] = target
	}
	return out, nil
}

// For returns the target of box b.
func (u URLs) For(b BoxName) (string, bool) {
	target, ok := u[b]
	return target, ok && target != ""
}

// Input bundles everything a loader produces for one render.
type Input struct {
	Data     Data     `json:"data"`
	Tooltips Tooltips `json:"tooltips"`
	URLs     URLs     `json:"urls,omitempty"`
}
