package dto

import (
	"math"
	"testing"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, limit string
		want        Page
		offset      int
	}{
		{"", "", Page{Page: 1, Limit: 10}, 0},
		{"3", "5", Page{Page: 3, Limit: 5}, 10},
		{"0", "-4", Page{Page: 1, Limit: 10}, 0},
		{"abc", "2.5", Page{Page: 1, Limit: 10}, 0},
		{"2", "1000", Page{Page: 2, Limit: MaxLimit}, MaxLimit},
		{"9223372036854775807", "10", Page{Page: math.MaxInt / 10, Limit: 10}, (math.MaxInt/10 - 1) * 10},
	}
	for _, tc := range cases {
		got := ParsePage(tc.page, tc.limit)
		if got != tc.want {
			t.Errorf("ParsePage(%q, %q) = %+v, want %+v", tc.page, tc.limit, got, tc.want)
		}
		if got.Offset() != tc.offset {
			t.Errorf("ParsePage(%q, %q).Offset() = %d, want %d", tc.page, tc.limit, got.Offset(), tc.offset)
		}
	}
}

func TestParsePageHugeOffsetStaysPositive(t *testing.T) {
	for _, limit := range []string{"1", "7", "10", "100"} {
		p := ParsePage("9223372036854775807", limit)
		if p.Offset() < 0 {
			t.Errorf("limit %s: Offset() = %d, want non-negative", limit, p.Offset())
		}
	}
}
