// Package cron schedules the periodic re-load of the weekly class
// schedule source file, so edits to the file show up without a restart.
package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/iliyamo/practice-room-reservation/internal/schedule"
)

// StartScheduleReload re-reads the schedule source every hour and swaps
// the in-memory table when the file parses.  A missing or malformed
// file leaves the current table untouched; the empty-schedule fallback
// only applies at startup, before any table has been loaded.
func StartScheduleReload(sched *schedule.Schedule, path string) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		blocks, err := schedule.LoadFile(path)
		if err != nil {
			log.Printf("schedule reload: %v; keeping current table", err)
			return
		}
		sched.ReplaceAll(blocks)
		log.Printf("schedule reload: %d blocks loaded from %s", len(blocks), path)
	})
	if err != nil {
		log.Printf("schedule reload: failed to register job: %v", err)
		return c
	}

	c.Start()
	return c
}
