package web

import (
	"bytes"
	"strings"
	"testing"
)

type span struct {
	Min, Max, Step, Default float64
}

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "index.html", span{Min: 2.5, Max: 5, Step: 0.1, Default: 3}, nil); err != nil {
		t.Fatal(err)
	}

	page := buf.String()
	for _, want := range []string{`min="2.5"`, `max="5"`, `step="0.1"`, `>3.0<`, "/api/query"} {
		if !strings.Contains(page, want) {
			t.Errorf("Rendered page missing %q", want)
		}
	}
}

func TestIndexDebouncesSlider(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, "index.html", span{Min: 2.5, Max: 5, Step: 0.1, Default: 3}, nil); err != nil {
		t.Fatal(err)
	}

	page := buf.String()
	for _, want := range []string{
		`addEventListener("input", scheduleQuery)`,
		"seq !== querySeq",
		"runQuery().catch(showError)",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Rendered page missing %q", want)
		}
	}
}
