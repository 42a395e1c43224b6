package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iliyamo/practice-room-reservation/internal/model"
)

func TestResolveForDate(t *testing.T) {
	s := New([]model.ClassBlock{
		{Weekday: 1, Room: "1", Start: "09:00", End: "12:00"},
		{Weekday: 1, Room: "3", Start: "14:00", End: "16:00"},
		{Weekday: 3, Room: "1", Start: "10:00", End: "11:00"},
		{Weekday: 7, Room: "2", Start: "13:00", End: "15:00"},
	})

	// 2025-03-10 is a Monday.
	monday := s.ResolveForDate("2025-03-10")
	if len(monday) != 2 {
		t.Fatalf("expected 2 blocks on Monday, got %d", len(monday))
	}
	for _, b := range monday {
		if b.Weekday != 1 {
			t.Errorf("resolved block with weekday %d on a Monday", b.Weekday)
		}
	}

	// 2025-03-16 is a Sunday; Go reports it as weekday 0.
	sunday := s.ResolveForDate("2025-03-16")
	if len(sunday) != 1 || sunday[0].Room != "2" {
		t.Fatalf("expected the single Sunday block for room 2, got %+v", sunday)
	}

	// 2025-03-11 is a Tuesday with no classes.
	if got := s.ResolveForDate("2025-03-11"); len(got) != 0 {
		t.Fatalf("expected no blocks on Tuesday, got %+v", got)
	}

	// Malformed dates resolve to nothing rather than erroring.
	if got := s.ResolveForDate("not-a-date"); got != nil {
		t.Fatalf("expected nil for malformed date, got %+v", got)
	}
}

func TestReplaceAllSwapsWholesale(t *testing.T) {
	s := New([]model.ClassBlock{{Weekday: 1, Room: "1", Start: "09:00", End: "10:00"}})

	s.ReplaceAll([]model.ClassBlock{
		{Weekday: 2, Room: "4", Start: "10:00", End: "11:00"},
	})

	all := s.All()
	if len(all) != 1 || all[0].Weekday != 2 || all[0].Room != "4" {
		t.Fatalf("replace did not swap the table: %+v", all)
	}

	// Mutating the returned slice must not leak into the snapshot.
	all[0].Room = "9"
	if s.All()[0].Room != "4" {
		t.Fatal("All() returned a view into the live snapshot")
	}

	s.ReplaceAll(nil)
	if len(s.All()) != 0 {
		t.Fatal("replacing with nil should empty the table")
	}
}

func TestLoadFileCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	content := "weekday,room,start,end\n" +
		"1,1,09:00,12:00\n" +
		"3,2,14:00,15:30\n" +
		"8,1,09:00,10:00\n" + // weekday out of range
		"2,abc,09:00,10:00\n" + // non-numeric room
		"2,3,11:00,10:00\n" // end before start
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	blocks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 valid rows, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Weekday != 1 || blocks[0].Room != "1" || blocks[1].End != "15:30" {
		t.Fatalf("unexpected rows: %+v", blocks)
	}
}

func TestLoadFileMissingFailsOpen(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing source file")
	}
	// The caller maps the error to an empty schedule; nothing here
	// should have panicked or fabricated blocks.
}
