package overlay

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

const labelClass = "section-label"

var (
	shapeRe  = regexp.MustCompile(`<(?:polygon|path)[^>]*?\s(?:points|d)="([^"]+)"`)
	numberRe = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)
)

// Labels draws the three rail texts, rotated a quarter turn counter
// clockwise, inside the identification, screening and included groups.
//
// Each label is centred on its rail bar as measured from the rendered
// outline. When a bar cannot be measured the variant's calibration
// coordinates are used instead. Empty labels and missing groups are skipped.
func Labels(doc []byte, p variant.Params, labels [3]string, style flow.Style) []byte {
	style = style.WithDefaults()
	rails := []struct {
		box      flow.BoxName
		fallback float64
	}{
		{flow.BoxIdentification, p.Labels.Identification},
		{flow.BoxScreening, p.Labels.Screening},
		{flow.BoxIncluded, p.Labels.Included},
	}

	for i, r := range rails {
		if labels[i] == "" {
			continue
		}
		g, ok := findGroup(doc, string(r.box))
		if !ok {
			continue
		}
		inner := g.content(doc)
		if bytes.Contains(inner, []byte(`class="`+labelClass+`"`)) {
			continue
		}

		x, y, ok := centre(inner)
		if !ok {
			x, y = p.Labels.X, r.fallback
		}

		var buf bytes.Buffer
		buf.Write(inner)
		canvas := svg.New(&buf)
		canvas.TranslateRotate(round(x), round(y), -90)
		canvas.Text(0, 0, labels[i],
			`class="`+labelClass+`"`,
			fmt.Sprintf("font-family:%s;font-size:%spx;font-weight:bold;text-anchor:middle;dominant-baseline:central",
				style.Font, strconv.FormatFloat(style.FontSize+2, 'f', -1, 64)))
		canvas.Gend()
		doc = splice(doc, g, buf.Bytes())
	}
	return doc
}

// centre returns the centre of the bounding box of the first polygon or
// path in a node group.
func centre(inner []byte) (float64, float64, bool) {
	m := shapeRe.FindSubmatch(inner)
	if m == nil {
		return 0, 0, false
	}
	nums := numberRe.FindAll(m[1], -1)
	if len(nums) < 4 {
		return 0, 0, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i+1 < len(nums); i += 2 {
		x, err1 := strconv.ParseFloat(string(nums[i]), 64)
		y, err2 := strconv.ParseFloat(string(nums[i+1]), 64)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return (minX + maxX) / 2, (minY + maxY) / 2, true
}

func round(f float64) int { return int(math.Round(f)) }
