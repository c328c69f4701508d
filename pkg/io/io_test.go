package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/flow/flowtest"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

const sampleCSV = `data,node,box,description,boxtext,tooltips,url,n
previous_studies,node2,box1,prev,Studies included in previous version of review,Old studies,page1.html,2
records_screened,node6,box4,screened,Records screened,,,1288
records_excluded,node7,box5,excluded,,,,1170
dbr_excluded,node11,box9,reasons,Reports excluded:,,,"Wrong population, 40; Wrong outcome, 18"
identification,node20,identification,rail,Identification,,#ident,
`

func TestReadCSV(t *testing.T) {
	in, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if n, _ := in.Data.Count(flow.RecordsScreened); n != 1288 {
		t.Errorf("records_screened = %d", n)
	}
	if l, _ := in.Data.Label(flow.PreviousStudies); l != "Studies included in previous version of review" {
		t.Errorf("previous_studies label = %q", l)
	}
	if _, ok := in.Data.Label(flow.RecordsExcluded); ok {
		t.Error("empty boxtext should stay empty")
	}

	want := []flow.Reason{{Reason: "Wrong population", Count: 40}, {Reason: "Wrong outcome", Count: 18}}
	if !reflect.DeepEqual(in.Data.DBRExcluded, want) {
		t.Errorf("dbr_excluded = %v, want %v", in.Data.DBRExcluded, want)
	}

	if got := in.Tooltips.For(flow.Node2); got != "Old studies" {
		t.Errorf("tooltip node 2 = %q", got)
	}
	if got, _ := in.URLs.For(flow.Box1); got != "page1.html" {
		t.Errorf("url box1 = %q", got)
	}
	if got, _ := in.URLs.For(flow.BoxIdentification); got != "#ident" {
		t.Errorf("url identification = %q", got)
	}
}

func TestReadCSVErrors(t *testing.T) {
	header := "data,node,box,description,boxtext,tooltips,url,n\n"
	tests := []struct {
		name string
		csv  string
		code errors.Code
	}{
		{"missing column", "data,node,box\nrecords_screened,node6,box4\n", errors.ErrCodeInvalidFormat},
		{"unknown metric", header + "records_screnned,node6,box4,,x,,,1\n", errors.ErrCodeInvalidMetric},
		{"bad count", header + "records_screened,node6,box4,,x,,,many\n", errors.ErrCodeInvalidInput},
		{"negative count", header + "records_screened,node6,box4,,x,,,-1\n", errors.ErrCodeInvalidInput},
		{"bad reason count", header + "dbr_excluded,node11,box9,,x,,,\"Wrong population, lots\"\n", errors.ErrCodeMalformedExclusion},
		{"unknown box", header + "records_screened,node6,box99,,x,,page.html,1\n", errors.ErrCodeInvalidBox},
		{"unsafe url", header + "records_screened,node6,box4,,x,,javascript:alert(1),1\n", errors.ErrCodeInvalidInput},
		{"unknown node", header + "records_screened,node30,box4,,x,tip,,1\n", errors.ErrCodeInvalidInput},
		{"repeated metric", header + "records_screened,node6,box4,,x,,,1\nrecords_screened,node6,box4,,y,,,2\n", errors.ErrCodeInvalidInput},
		{"conflicting url", header + "records_screened,node6,box4,,x,,a.html,1\nrecords_excluded,node7,box4,,y,,b.html,2\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.csv))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadCSV() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadCSVRepeatedRows(t *testing.T) {
	header := "data,node,box,description,boxtext,tooltips,url,n\n"

	_, err := ReadCSV(strings.NewReader(header +
		"records_screened,node6,box4,,x,,,1\n" +
		"records_excluded,node7,box5,,y,,,2\n" +
		"records_screened,node6,box4,,z,,,3\n"))
	if err == nil || !strings.Contains(err.Error(), "line 4") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("ReadCSV() error = %v, want both lines named", err)
	}

	in, err := ReadCSV(strings.NewReader(header +
		"records_screened,node6,box4,,x,,same.html,1\n" +
		"records_excluded,node7,box4,,y,,same.html,2\n"))
	if err != nil {
		t.Fatalf("identical url for one box should pass: %v", err)
	}
	if got, _ := in.URLs.For(flow.Box4); got != "same.html" {
		t.Errorf("url box4 = %q", got)
	}
}

func TestParseExclusionTable(t *testing.T) {
	tests := []struct {
		in      string
		want    []flow.Reason
		wantRow int
	}{
		{"", nil, 0},
		{"dup, 3", []flow.Reason{{Reason: "dup", Count: 3}}, 0},
		{"dup, 3; automatic, 5", []flow.Reason{{Reason: "dup", Count: 3}, {Reason: "automatic", Count: 5}}, 0},
		{"Not in English, German, or French, 4;", []flow.Reason{{Reason: "Not in English, German, or French", Count: 4}}, 0},
		{"dup, 3; automatic", nil, 2},
		{", 3", nil, 1},
		{"dup, -3", nil, 1},
	}

	for _, tt := range tests {
		got, err := ParseExclusionTable(flow.DBRExcluded, tt.in)
		if tt.wantRow > 0 {
			mErr, ok := err.(*errors.MalformedExclusionTableError)
			if !ok {
				t.Errorf("ParseExclusionTable(%q) error = %v, want *MalformedExclusionTableError", tt.in, err)
				continue
			}
			if mErr.Row != tt.wantRow || mErr.Metric != "dbr_excluded" {
				t.Errorf("ParseExclusionTable(%q) error = %+v", tt.in, mErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExclusionTable(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseExclusionTable(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestImportCSVNotFound(t *testing.T) {
	_, err := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportCSV() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.json")
	body := `{"data": {"counts": {"records_screened": 3}}, "tooltips": []}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if n, _ := in.Data.Count(flow.RecordsScreened); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadJSON(t *testing.T) {
	body := `{
	  "data": {
	    "counts": {"records_screened": 10},
	    "labels": {"records_screened": "Screened"},
	    "dbr_excluded": [{"reason": "Wrong population", "count": 4}]
	  },
	  "tooltips": ["first"],
	  "urls": {"box4": "screened.html"}
	}`
	in, err := ReadJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if n, _ := in.Data.Count(flow.RecordsScreened); n != 10 {
		t.Errorf("count = %d", n)
	}
	if in.Data.DBRExcluded[0].Reason != "Wrong population" {
		t.Errorf("reasons = %v", in.Data.DBRExcluded)
	}
	if in.Tooltips.For(flow.Node1) != "first" {
		t.Errorf("tooltips = %v", in.Tooltips)
	}
	if got, _ := in.URLs.For(flow.Box4); got != "screened.html" {
		t.Errorf("urls = %v", in.URLs)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name, body string
		code       errors.Code
	}{
		{"syntax", `{"data":`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"flags": true}`, errors.ErrCodeInvalidFormat},
		{"unknown metric", `{"data": {"counts": {"nope": 1}}}`, errors.ErrCodeInvalidMetric},
		{"unknown label", `{"data": {"labels": {"nope": "x"}}}`, errors.ErrCodeInvalidMetric},
		{"unknown box", `{"urls": {"box0": "x.html"}}`, errors.ErrCodeInvalidBox},
		{"negative", `{"data": {"counts": {"duplicates": -1}}}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	d, err := diagram.Assemble(flowtest.Data(), flow.Tooltips{}, variant.Select(false, false), flow.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"variant": "FF"`, `"id": "6"`, `"box": "box4"`, `"rank_groups"`} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON() output missing %s", want)
		}
	}

	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if data, _ := os.ReadFile(path); !bytes.Equal(data, buf.Bytes()) {
		t.Error("ExportJSON() and WriteJSON() disagree")
	}
}

func TestLoadStyle(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	s, err := LoadStyle(write("style.toml", "font = \"Times\"\nfont_size = 12.0\narrow_head = \"vee\"\n"))
	if err != nil {
		t.Fatalf("LoadStyle(toml) error = %v", err)
	}
	if s.Font != "Times" || s.FontSize != 12 || s.ArrowHead != "vee" || s.MainColour != flow.DefaultMainColour {
		t.Errorf("toml style = %+v", s)
	}

	s, err = LoadStyle(write("style.yml", "title_colour: \"#336699\"\n"))
	if err != nil {
		t.Fatalf("LoadStyle(yaml) error = %v", err)
	}
	if s.TitleColour != "#336699" || s.Font != flow.DefaultFont {
		t.Errorf("yaml style = %+v", s)
	}

	if _, err := LoadStyle(write("empty.yaml", "")); err != nil {
		t.Errorf("empty yaml should give defaults: %v", err)
	}

	tests := []struct {
		name, file, content string
		code                errors.Code
	}{
		{"bad arrow", "a.toml", "arrow_head = \"spear\"\n", errors.ErrCodeInvalidStyle},
		{"unknown toml key", "b.toml", "colour = \"Red\"\n", errors.ErrCodeInvalidStyle},
		{"unknown yaml key", "c.yaml", "colour: Red\n", errors.ErrCodeInvalidStyle},
		{"extension", "d.json", "{}", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStyle(write(tt.file, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadStyle() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := LoadStyle(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
