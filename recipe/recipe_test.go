package recipe_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssel/recipe"
	"cssel/selector"
)

func TestLoad_File(t *testing.T) {
	data, err := os.ReadFile("testdata/site.yaml")
	if err != nil {
		t.Fatalf("failed to read testdata recipe: %v", err)
	}

	r, err := recipe.Load(data)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	results, err := r.Build(zaptest.NewLogger(t), true)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	want := map[string]string{
		"active-nav-link": "a.nav-link:active",
		"post-title":      "h1#title::first-line",
		"required-input":  "input[required]:invalid",
		"adjacent-note":   "p + aside.note",
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for _, res := range results {
		if want[res.Name] != res.Selector {
			t.Errorf("%s: got %q, want %q", res.Name, res.Selector, want[res.Name])
		}
	}
}

func TestLoad_Simple(t *testing.T) {
	data := []byte(`
version: 1
selectors:
  - name: focused-link
    parts:
      - type: element
        value: a
      - type: attr
        value: href$=".png"
      - type: pseudo-class
        value: focus
`)
	r, err := recipe.Load(data)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(r.Selectors) != 1 {
		t.Fatalf("expected 1 selector, got %d", len(r.Selectors))
	}

	results, err := r.Build(zaptest.NewLogger(t), false)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if want := `a[href$=".png"]:focus`; results[0].Selector != want {
		t.Errorf("got %q, want %q", results[0].Selector, want)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	data := []byte(`
version: 1
selectors:
  - name: x
    parts:
      - type: element
        value: div
        colour: red
`)
	if _, err := recipe.Load(data); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoad_UnknownPartTypeRejected(t *testing.T) {
	data := []byte(`
version: 1
selectors:
  - name: x
    parts:
      - type: universal
        value: "*"
`)
	_, err := recipe.Load(data)
	if err == nil {
		t.Fatal("expected validation error for unknown part type")
	}
	if !strings.Contains(err.Error(), "invalid recipe") {
		t.Errorf("expected validation error, got: %v", err)
	}
}

func TestLoad_BadVersionRejected(t *testing.T) {
	data := []byte(`
version: 2
selectors:
  - name: x
    parts:
      - type: element
        value: div
`)
	if _, err := recipe.Load(data); err == nil {
		t.Fatal("expected validation error for unsupported version")
	}
}

func TestBuild_Combine(t *testing.T) {
	data := []byte(`
version: 1
selectors:
  - name: sibling-tables
    parts:
      - type: combine
        separator: "+"
        left:
          parts:
            - type: element
              value: div
            - type: id
              value: main
        right:
          parts:
            - type: element
              value: table
            - type: id
              value: data
`)
	r, err := recipe.Load(data)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	results, err := r.Build(zap.NewNop(), false)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if want := "div#main + table#data"; results[0].Selector != want {
		t.Errorf("got %q, want %q", results[0].Selector, want)
	}
}

func TestBuild_CombineMissingSideFails(t *testing.T) {
	r := &recipe.Recipe{
		Version: 1,
		Selectors: []recipe.Entry{
			{Name: "broken", Spec: recipe.Spec{Parts: []recipe.PartSpec{
				{Type: "combine", Separator: ">", Left: &recipe.Spec{Parts: []recipe.PartSpec{{Type: "element", Value: "ul"}}}},
			}}},
		},
	}
	results, err := r.Build(zap.NewNop(), false)
	if err == nil {
		t.Fatal("expected error for combine without right side")
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBuild_CollectsFailuresAndKeepsGoing(t *testing.T) {
	r := &recipe.Recipe{
		Version: 1,
		Selectors: []recipe.Entry{
			{Name: "bad-order", Spec: recipe.Spec{Parts: []recipe.PartSpec{
				{Type: "class", Value: "a"},
				{Type: "id", Value: "b"},
			}}},
			{Name: "good", Spec: recipe.Spec{Parts: []recipe.PartSpec{
				{Type: "element", Value: "p"},
			}}},
			{Name: "bad-dup", Spec: recipe.Spec{Parts: []recipe.PartSpec{
				{Type: "id", Value: "a"},
				{Type: "id", Value: "b"},
			}}},
		},
	}

	results, err := r.Build(zaptest.NewLogger(t), false)
	if len(results) != 1 || results[0].Selector != "p" {
		t.Fatalf("expected the one good selector to survive, got %#v", results)
	}
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !errors.Is(err, selector.ErrOutOfOrder) {
		t.Errorf("aggregate should contain ErrOutOfOrder: %v", err)
	}
	if !errors.Is(err, selector.ErrDuplicatePart) {
		t.Errorf("aggregate should contain ErrDuplicatePart: %v", err)
	}
}

func TestBuild_SlugOption(t *testing.T) {
	r := &recipe.Recipe{
		Version: 1,
		Selectors: []recipe.Entry{
			{Name: "chapter", Spec: recipe.Spec{Parts: []recipe.PartSpec{
				{Type: "element", Value: "div"},
				{Type: "class", Value: "Chapter One!", Slug: true},
			}}},
		},
	}
	results, err := r.Build(zap.NewNop(), false)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if want := "div.chapter-one"; results[0].Selector != want {
		t.Errorf("got %q, want %q", results[0].Selector, want)
	}
}

func TestBuild_NaturalNameOrder(t *testing.T) {
	spec := func(el string) recipe.Spec {
		return recipe.Spec{Parts: []recipe.PartSpec{{Type: "element", Value: el}}}
	}
	r := &recipe.Recipe{
		Version: 1,
		Selectors: []recipe.Entry{
			{Name: "step10", Spec: spec("a")},
			{Name: "step2", Spec: spec("b")},
			{Name: "step1", Spec: spec("c")},
		},
	}
	results, err := r.Build(zap.NewNop(), true)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	var names []string
	for _, res := range results {
		names = append(names, res.Name)
	}
	want := []string{"step1", "step2", "step10"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got order %v, want %v", names, want)
		}
	}
}
