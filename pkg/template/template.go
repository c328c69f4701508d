// Package template embeds the example CSV template.
//
// The template lists every metric with an English box text, a tooltip and
// example counts. Copy it with `prismaflow template`, edit the n column and
// render it with `prismaflow render`.
package template

import (
	"bytes"
	_ "embed"

	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/io"
)

// FileName is the default name of the written template.
const FileName = "PRISMA.csv"

//go:embed PRISMA.csv
var csvTemplate []byte

// CSV returns a copy of the template bytes.
func CSV() []byte {
	return bytes.Clone(csvTemplate)
}

// Input parses the embedded template.
func Input() (flow.Input, error) {
	return io.ReadCSV(bytes.NewReader(csvTemplate))
}
