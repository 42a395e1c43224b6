package middleware

import (
	"net/url"
	"testing"

	"github.com/iliyamo/practice-room-reservation/internal/config"
)

// A grid-only timetable response and a detail-bar response share a date
// but differ in shape, so only the plain date query may hit the cache.
func TestCacheableQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		wantDate string
		wantOK   bool
	}{
		{name: "date only", rawQuery: "date=2025-03-11", wantDate: "2025-03-11", wantOK: true},
		{name: "no query", rawQuery: "", wantOK: false},
		{name: "missing date", rawQuery: "room=2&hour=10", wantOK: false},
		{name: "date with detail selectors", rawQuery: "date=2025-03-11&room=2&hour=10", wantOK: false},
		{name: "date with one extra param", rawQuery: "date=2025-03-11&room=2", wantOK: false},
		{name: "empty date value", rawQuery: "date=", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatal(err)
			}
			date, ok := cacheableQuery(q)
			if ok != tt.wantOK || date != tt.wantDate {
				t.Errorf("cacheableQuery(%q) = (%q, %v), want (%q, %v)",
					tt.rawQuery, date, ok, tt.wantDate, tt.wantOK)
			}
		})
	}
}

func TestCacheKeyShape(t *testing.T) {
	cc := NewCache(config.CacheConfig{Enabled: true, Prefix: "cache"}, nil, "/api/timetable")
	got := cc.key("/api/timetable", "2025-03-11")
	if got != "cache:/api/timetable:2025-03-11" {
		t.Errorf("key = %q", got)
	}
}
