package diagram

import (
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/text"
)

// headerWrap is the wrap width of the two-column arm headers.
const headerWrap = 2 * text.WidthWide

// content builds the wrapped label of id from d. It fails on the first
// metric id needs that has no count or no label.
func content(id flow.NodeID, d flow.Data) (string, error) {
	r := reader{data: d}
	var s string
	switch id {
	case flow.Node1:
		s = r.wrapped(flow.PrevStudHeader, text.WidthWide)
	case flow.Node2:
		s = text.Lines(r.cell(flow.PreviousStudies, text.WidthWide), r.cell(flow.PreviousReports, text.WidthWide))
	case flow.Node3:
		s = r.wrapped(flow.NewStudHeader, headerWrap)
	case flow.Node4:
		s = text.Lines(
			r.wrapped(flow.DBRIdentified, text.WidthWide),
			r.cell(flow.DatabaseResults, text.WidthWide),
			r.cell(flow.RegisterResults, text.WidthWide),
		)
	case flow.Node5:
		s = text.Lines(
			r.wrapped(flow.RemovedBeforeScreening, text.WidthNarrow),
			r.cell(flow.Duplicates, text.WidthNarrow),
			r.cell(flow.ExcludedAutomatic, text.WidthNarrow),
			r.cell(flow.ExcludedOther, text.WidthNarrow),
		)
	case flow.Node6:
		s = r.cell(flow.RecordsScreened, text.WidthWide)
	case flow.Node7:
		s = r.cell(flow.RecordsExcluded, text.WidthNarrow)
	case flow.Node8:
		s = r.cell(flow.DBRSoughtReports, text.WidthWide)
	case flow.Node9:
		s = r.cell(flow.DBRNotRetrieved, text.WidthNarrow)
	case flow.Node10:
		s = r.cell(flow.DBRAssessed, text.WidthWide)
	case flow.Node11:
		s = r.reasons(flow.DBRExcluded, text.WidthNarrow)
	case flow.Node12:
		s = text.Lines(r.cell(flow.NewStudies, text.WidthWide), r.cell(flow.NewReports, text.WidthWide))
	case flow.Node13:
		s = r.wrapped(flow.OthStudHeader, headerWrap)
	case flow.Node14:
		s = text.Lines(
			r.wrapped(flow.OtherIdentified, text.WidthWide),
			r.cell(flow.WebsiteResults, text.WidthWide),
			r.cell(flow.OrganisationResults, text.WidthWide),
			r.cell(flow.CitationsResults, text.WidthWide),
		)
	case flow.Node15:
		s = r.cell(flow.OtherSoughtReports, text.WidthWide)
	case flow.Node16:
		s = r.cell(flow.OtherNotRetrieved, text.WidthNarrow)
	case flow.Node17:
		s = r.cell(flow.OtherAssessed, text.WidthWide)
	case flow.Node18:
		s = r.reasons(flow.OtherExcluded, text.WidthNarrow)
	case flow.Node19:
		s = text.Lines(r.cell(flow.TotalStudies, text.WidthWide), r.cell(flow.TotalReports, text.WidthWide))
	case flow.Node20:
		s = r.label(flow.IdentificationRail)
	case flow.Node21:
		s = r.label(flow.ScreeningRail)
	case flow.Node22:
		s = r.label(flow.IncludedRail)
	}
	if r.err != nil {
		return "", r.err
	}
	return s, nil
}

// reader resolves metrics and keeps the first failure.
type reader struct {
	data flow.Data
	err  error
}

func (r *reader) label(m flow.Metric) string {
	if r.err != nil {
		return ""
	}
	s, ok := r.data.Label(m)
	if !ok {
		r.err = &errors.MissingDataError{Metric: string(m), Field: "label"}
	}
	return s
}

func (r *reader) count(m flow.Metric) int {
	if r.err != nil {
		return 0
	}
	n, ok := r.data.Count(m)
	if !ok {
		r.err = &errors.MissingDataError{Metric: string(m), Field: "count"}
	}
	return n
}

func (r *reader) wrapped(m flow.Metric, width int) string {
	return text.Wrap(r.label(m), width)
}

func (r *reader) cell(m flow.Metric, width int) string {
	n := r.count(m)
	label := r.label(m)
	if r.err != nil {
		return ""
	}
	return text.Wrap(text.Cell(label, n), width)
}

func (r *reader) reasons(m flow.Metric, width int) string {
	base := r.label(m)
	if r.err != nil {
		return ""
	}
	return text.WrapLines(text.MultiReason(base, r.data.Reasons(m)), width)
}
