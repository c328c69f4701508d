package flow

import (
	"github.com/matzehuels/prismaflow/pkg/errors"
)

// Metric names one input value of the flow diagram. Count metrics carry a
// number and a label; label-only metrics carry just box or header text.
type Metric string

// Count metrics.
const (
	PreviousStudies     Metric = "previous_studies"
	PreviousReports     Metric = "previous_reports"
	DatabaseResults     Metric = "database_results"
	RegisterResults     Metric = "register_results"
	WebsiteResults      Metric = "website_results"
	OrganisationResults Metric = "organisation_results"
	CitationsResults    Metric = "citations_results"
	Duplicates          Metric = "duplicates"
	ExcludedAutomatic   Metric = "excluded_automatic"
	ExcludedOther       Metric = "excluded_other"
	RecordsScreened     Metric = "records_screened"
	RecordsExcluded     Metric = "records_excluded"
	DBRSoughtReports    Metric = "dbr_sought_reports"
	DBRNotRetrieved     Metric = "dbr_notretrieved_reports"
	OtherSoughtReports  Metric = "other_sought_reports"
	OtherNotRetrieved   Metric = "other_notretrieved_reports"
	DBRAssessed         Metric = "dbr_assessed"
	OtherAssessed       Metric = "other_assessed"
	NewStudies          Metric = "new_studies"
	NewReports          Metric = "new_reports"
	TotalStudies        Metric = "total_studies"
	TotalReports        Metric = "total_reports"
)

// Table metrics hold a list of reasons instead of a single count.
const (
	DBRExcluded   Metric = "dbr_excluded"
	OtherExcluded Metric = "other_excluded"
)

// Label-only metrics.
const (
	PrevStudHeader         Metric = "prevstud"
	NewStudHeader          Metric = "newstud"
	OthStudHeader          Metric = "othstud"
	IdentificationRail     Metric = "identification"
	ScreeningRail          Metric = "screening"
	IncludedRail           Metric = "included"
	DBRIdentified          Metric = "dbr_identified"
	RemovedBeforeScreening Metric = "removed_before_screening"
	OtherIdentified        Metric = "other_identified"
)

// MetricKind classifies how a metric is stored in [Data].
type MetricKind int

const (
	KindCount MetricKind = iota
	KindTable
	KindLabel
)

var metricKinds = map[Metric]MetricKind{
	PreviousStudies:        KindCount,
	PreviousReports:        KindCount,
	DatabaseResults:        KindCount,
	RegisterResults:        KindCount,
	WebsiteResults:         KindCount,
	OrganisationResults:    KindCount,
	CitationsResults:       KindCount,
	Duplicates:             KindCount,
	ExcludedAutomatic:      KindCount,
	ExcludedOther:          KindCount,
	RecordsScreened:        KindCount,
	RecordsExcluded:        KindCount,
	DBRSoughtReports:       KindCount,
	DBRNotRetrieved:        KindCount,
	OtherSoughtReports:     KindCount,
	OtherNotRetrieved:      KindCount,
	DBRAssessed:            KindCount,
	OtherAssessed:          KindCount,
	NewStudies:             KindCount,
	NewReports:             KindCount,
	TotalStudies:           KindCount,
	TotalReports:           KindCount,
	DBRExcluded:            KindTable,
	OtherExcluded:          KindTable,
	PrevStudHeader:         KindLabel,
	NewStudHeader:          KindLabel,
	OthStudHeader:          KindLabel,
	IdentificationRail:     KindLabel,
	ScreeningRail:          KindLabel,
	IncludedRail:           KindLabel,
	DBRIdentified:          KindLabel,
	RemovedBeforeScreening: KindLabel,
	OtherIdentified:        KindLabel,
}

// Kind reports how m is stored. Unknown metrics report KindLabel.
func (m Metric) Kind() MetricKind {
	if k, ok := metricKinds[m]; ok {
		return k
	}
	return KindLabel
}

// Valid reports whether m belongs to the closed metric vocabulary.
func (m Metric) Valid() bool {
	_, ok := metricKinds[m]
	return ok
}

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMetric, "unknown metric %q", s)
	}
	return m, nil
}
