package timeslot

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "14:30", want: 870},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "-1:00", wantErr: true},
		{in: "1200", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// Every well-formed HH:MM must survive a Parse/Format round trip.
func TestFormatRoundTrip(t *testing.T) {
	for min := 0; min < 24*60; min++ {
		s := Format(min)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(Format(%d)) failed: %v", min, err)
		}
		if got != min {
			t.Fatalf("round trip %d -> %q -> %d", min, s, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd int
		want                           bool
	}{
		{name: "disjoint before", aStart: 540, aEnd: 600, bStart: 660, bEnd: 720, want: false},
		{name: "disjoint after", aStart: 660, aEnd: 720, bStart: 540, bEnd: 600, want: false},
		{name: "adjacent edges do not overlap", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, want: false},
		{name: "partial overlap at end", aStart: 540, aEnd: 630, bStart: 600, bEnd: 660, want: true},
		{name: "partial overlap at start", aStart: 600, aEnd: 660, bStart: 540, bEnd: 630, want: true},
		{name: "a inside b", aStart: 570, aEnd: 590, bStart: 540, bEnd: 600, want: true},
		{name: "b inside a", aStart: 540, aEnd: 600, bStart: 570, bEnd: 590, want: true},
		{name: "identical", aStart: 540, aEnd: 600, bStart: 540, bEnd: 600, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestOverlapsClock(t *testing.T) {
	if !OverlapsClock("14:30", "15:30", "14:00", "15:00") {
		t.Error("expected 14:30-15:30 to overlap 14:00-15:00")
	}
	if OverlapsClock("15:00", "16:00", "14:00", "15:00") {
		t.Error("adjacent ranges must not overlap")
	}
	if OverlapsClock("bogus", "16:00", "14:00", "15:00") {
		t.Error("malformed input must report no overlap")
	}
}
