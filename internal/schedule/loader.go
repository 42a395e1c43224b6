package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/timeslot"
)

// LoadFile reads the weekly schedule source at path.  Workbooks
// (".xlsx") are read with excelize from the first sheet; anything else
// is treated as CSV.  Both formats share the same tabular shape: a
// header row followed by (weekday 1-7, room, start HH:MM, end HH:MM)
// rows.
//
// The schedule is optional.  Callers are expected to map any returned
// error to an empty schedule after logging it; LoadFile itself never
// fabricates blocks from bad data.  Rows that fail validation are
// skipped individually so one typo does not take down the whole table.
func LoadFile(path string) ([]model.ClassBlock, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadWorkbook(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) ([]model.ClassBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validated per row below
	r.TrimLeadingSpace = true

	var blocks []model.ClassBlock
	header := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if b, ok := parseRow(rec); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func loadWorkbook(path string) ([]model.ClassBlock, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var blocks []model.ClassBlock
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if b, ok := parseRow(row); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// parseRow validates one (weekday, room, start, end) record.  A row is
// accepted only when the weekday is 1..7, the room is a positive
// integer and the interval is a well-ordered pair of HH:MM times.
func parseRow(rec []string) (model.ClassBlock, bool) {
	if len(rec) < 4 {
		return model.ClassBlock{}, false
	}
	weekday, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil || weekday < 1 || weekday > 7 {
		return model.ClassBlock{}, false
	}
	room := strings.TrimSpace(rec[1])
	if n, err := strconv.Atoi(room); err != nil || n <= 0 {
		return model.ClassBlock{}, false
	}
	start := strings.TrimSpace(rec[2])
	end := strings.TrimSpace(rec[3])
	startMin, err := timeslot.Parse(start)
	if err != nil {
		return model.ClassBlock{}, false
	}
	endMin, err := timeslot.Parse(end)
	if err != nil || endMin <= startMin {
		return model.ClassBlock{}, false
	}
	return model.ClassBlock{Weekday: weekday, Room: room, Start: start, End: end}, true
}
