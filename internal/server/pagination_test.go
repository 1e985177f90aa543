package server

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/sessions?page=3&per_page=250", nil)
	page, perPage := parsePagination(r, 20, 100)
	if page != 3 || perPage != 100 {
		t.Fatalf("expected page 3 capped at 100 per page, got %d %d", page, perPage)
	}

	r = httptest.NewRequest("GET", "/api/sessions?page=-1&per_page=junk", nil)
	page, perPage = parsePagination(r, 20, 100)
	if page != 1 || perPage != 20 {
		t.Fatalf("expected defaults for bad input, got %d %d", page, perPage)
	}
}

func TestBuildPaginationData(t *testing.T) {
	data := buildPaginationData("/history", 2, 10, 35)
	if data.TotalPages != 4 {
		t.Fatalf("expected 4 pages, got %d", data.TotalPages)
	}
	if !data.HasPrev || data.PrevPage != 1 {
		t.Fatalf("expected prev page 1, got %+v", data)
	}
	if !data.HasNext || data.NextPage != 3 {
		t.Fatalf("expected next page 3, got %+v", data)
	}

	data = buildPaginationData("/history", 9, 10, 35)
	if data.Page != 4 || data.HasNext {
		t.Fatalf("expected page clamped to last, got %+v", data)
	}

	data = buildPaginationData("/history", 1, 10, 0)
	if data.TotalPages != 1 || data.HasPrev || data.HasNext {
		t.Fatalf("expected single empty page, got %+v", data)
	}
}
