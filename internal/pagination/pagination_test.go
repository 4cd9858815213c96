package pagination

import (
	"net/http/httptest"
	"testing"
)

// TestParseParams tests query parameter parsing and clamping
func TestParseParams(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{name: "Defaults", url: "/patients", wantPage: DefaultPage, wantLimit: DefaultLimit},
		{name: "Explicit values", url: "/patients?page=3&limit=10", wantPage: 3, wantLimit: 10},
		{name: "Limit clamped to max", url: "/patients?limit=500", wantPage: 1, wantLimit: MaxLimit},
		{name: "Invalid page ignored", url: "/patients?page=-2", wantPage: DefaultPage, wantLimit: DefaultLimit},
		{name: "Non-numeric ignored", url: "/patients?page=abc&limit=xyz", wantPage: DefaultPage, wantLimit: DefaultLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.url, nil)
			params := ParseParams(req)

			if params.Page != tc.wantPage {
				t.Errorf("Expected page %d, got %d", tc.wantPage, params.Page)
			}
			if params.Limit != tc.wantLimit {
				t.Errorf("Expected limit %d, got %d", tc.wantLimit, params.Limit)
			}
		})
	}
}

// TestOffset tests SQL offset derivation
func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Errorf("Expected offset 20, got %d", got)
	}
}

// TestCalculateMeta tests pagination metadata
func TestCalculateMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	meta := p.CalculateMeta(35)

	if meta.TotalPages != 4 {
		t.Errorf("Expected 4 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Error("Expected both next and previous pages")
	}

	empty := Params{Page: 1, Limit: 10}
	meta = empty.CalculateMeta(0)
	if meta.TotalPages != 1 {
		t.Errorf("Expected 1 page for empty result, got %d", meta.TotalPages)
	}
	if meta.HasNext {
		t.Error("Expected no next page for empty result")
	}
}
