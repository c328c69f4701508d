// Package flowtest provides complete flow data for tests.
package flowtest

import "github.com/matzehuels/prismaflow/pkg/flow"

// Data returns flow data with every count and label of the template set.
// The numbers are the example values shipped with the PRISMA 2020 template.
func Data() flow.Data {
	d := flow.NewData()
	counts := map[flow.Metric]int{
		flow.PreviousStudies:     2,
		flow.PreviousReports:     3,
		flow.DatabaseResults:     1234,
		flow.RegisterResults:     321,
		flow.WebsiteResults:      42,
		flow.OrganisationResults: 7,
		flow.CitationsResults:    15,
		flow.Duplicates:          201,
		flow.ExcludedAutomatic:   54,
		flow.ExcludedOther:       12,
		flow.RecordsScreened:     1288,
		flow.RecordsExcluded:     1170,
		flow.DBRSoughtReports:    118,
		flow.DBRNotRetrieved:     6,
		flow.OtherSoughtReports:  64,
		flow.OtherNotRetrieved:   2,
		flow.DBRAssessed:         112,
		flow.OtherAssessed:       62,
		flow.NewStudies:          29,
		flow.NewReports:          35,
		flow.TotalStudies:        31,
		flow.TotalReports:        38,
	}
	for m, n := range counts {
		d.Counts[m] = n
	}
	d.DBRExcluded = []flow.Reason{
		{Reason: "Wrong population", Count: 40},
		{Reason: "Wrong intervention", Count: 25},
		{Reason: "Wrong outcome", Count: 18},
	}
	d.OtherExcluded = []flow.Reason{
		{Reason: "Wrong study design", Count: 30},
		{Reason: "Not peer reviewed", Count: 6},
	}
	return d.WithDefaultLabels()
}

// Tooltips returns a tooltip for every node.
func Tooltips() flow.Tooltips {
	var t flow.Tooltips
	for i, id := range flow.AllNodes {
		if id.Synthetic() {
			continue
		}
		t[i] = "Tooltip for " + string(id.Box())
	}
	return t
}
