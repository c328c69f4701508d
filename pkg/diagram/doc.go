// Package diagram assembles the nodes, edges and rank groups of a PRISMA 2020
// flow diagram.
//
// # Overview
//
// [Assemble] takes the loaded [flow.Data], the tooltips, the parameters of the
// active [variant] and a [flow.Style], and returns a [Diagram]: every node
// with its wrapped label, pinned position and size, every edge with its
// styling, and the groups of nodes that share a row.
//
//	p := variant.Select(true, true)
//	d, err := diagram.Assemble(data, tips, p, flow.DefaultStyle())
//	if err != nil {
//	    // *errors.MissingDataError names the metric
//	}
//
// # Fixed Grid
//
// Positions are never computed by the rendering engine. Every node sits on a
// fixed column and row of the PRISMA 2020 template, shifted by the variant's
// origin offset. The rail bars on the left keep their column when the
// previous studies arm is absent so the labels stay flush with the border.
//
// # Failure
//
// Assembly checks every metric an active node needs before building
// anything. The first missing count or label, in node order, is reported as
// an [errors.MissingDataError]; negative counts and bad exclusion rows are
// rejected by [flow.Data.Validate]. No partial diagram is ever returned.
//
// [errors.MissingDataError]: github.com/matzehuels/prismaflow/pkg/errors.MissingDataError
package diagram
