package models

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	got := PageRequest{Page: 0, Limit: -3}.Normalize()
	if got.Page != DefaultPage || got.Limit != DefaultLimit {
		t.Fatalf("Normalize = %+v, want page %d limit %d", got, DefaultPage, DefaultLimit)
	}
	if skip := (PageRequest{Page: 3, Limit: 20}).Skip(); skip != 40 {
		t.Fatalf("Skip = %d, want 40", skip)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int64
		wantPages int64
	}{
		{total: 0, limit: 10, wantPages: 0},
		{total: 10, limit: 10, wantPages: 1},
		{total: 11, limit: 10, wantPages: 2},
		{total: 25, limit: 0, wantPages: 3},
	}
	for _, tc := range tests {
		p := NewPagination(tc.total, PageRequest{Page: 2, Limit: tc.limit})
		if p.Pages != tc.wantPages || p.Total != tc.total || p.Page != 2 {
			t.Fatalf("NewPagination(%d, limit %d) = %+v, want pages %d", tc.total, tc.limit, p, tc.wantPages)
		}
	}
}
