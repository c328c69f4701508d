// Package io loads flow diagram inputs and style files, and exports
// assembled diagrams as JSON.
//
// # CSV Template
//
// The CSV layout follows the PRISMA 2020 flow diagram template. Each row
// describes one metric:
//
//	data,node,box,description,boxtext,tooltips,url,n
//	previous_studies,node1,box1,Studies included in previous version,Studies included in previous version of review,Tooltip,page1.html,2
//
// Columns:
//   - data: metric name; unknown names are rejected
//   - node: node the tooltip belongs to ("node4" or "4")
//   - box: box the URL belongs to ("box1", "identification", ...)
//   - description: free text, ignored
//   - boxtext: label shown in the box
//   - tooltips: optional hover text of the node
//   - url: optional link target of the box
//   - n: count, or for dbr_excluded and other_excluded a reason table
//     written as "Wrong population, 40; Wrong outcome, 18"
//
// Use [ImportCSV] to read a file, or [ReadCSV] to read from any io.Reader.
// Empty box texts stay empty; callers fill them with
// [flow.Data.WithDefaultLabels].
//
// # JSON
//
// [ReadJSON] decodes a [flow.Input] object as accepted by the HTTP service.
// [WriteJSON] writes an assembled diagram with its nodes, edges, rank
// groups and subgraphs.
//
// # Style Files
//
// [LoadStyle] reads a style from TOML (.toml) or YAML (.yaml, .yml). Unset
// fields take the template defaults and the result is validated.
package io
