package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/booking"
	"github.com/iliyamo/practice-room-reservation/internal/config"
	"github.com/iliyamo/practice-room-reservation/internal/cron"
	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/handler"
	"github.com/iliyamo/practice-room-reservation/internal/middleware"
	"github.com/iliyamo/practice-room-reservation/internal/queue"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
	"github.com/iliyamo/practice-room-reservation/internal/router"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}
	cfg := config.Load()

	// The store comes up in the background with an unbounded retry;
	// until it is ready every data route answers 503.
	db := &database.DB{}
	go db.Connect(context.Background(), cfg.DatabaseURL)

	// Weekly class schedule: absent or malformed source degrades to an
	// empty table (fail-open) and the hourly reload may fill it later.
	blocks, err := schedule.LoadFile(cfg.ScheduleFile)
	if err != nil {
		log.Printf("class schedule %s not loaded: %v; starting with an empty schedule", cfg.ScheduleFile, err)
		blocks = nil
	} else {
		log.Printf("class schedule: %d blocks loaded from %s", len(blocks), cfg.ScheduleFile)
	}
	sched := schedule.New(blocks)
	cron.StartScheduleReload(sched, cfg.ScheduleFile)

	repo := repository.NewReservationRepo(db)
	engine := booking.NewEngine(repo, sched)

	// Optional collaborators: Redis response cache and the broker-backed
	// audit trail.  Both disable themselves when unconfigured.
	rdb := config.NewRedisClient()
	cache := middleware.NewCache(config.LoadCacheConfig(), rdb,
		"/api/reservations", "/api/blocks", "/api/timetable")
	go queue.StartConsumer()

	e := echo.New()
	router.Register(e, cfg, db,
		handler.NewReservationHandler(repo, engine, cache),
		handler.NewBlocksHandler(sched),
		handler.NewTimetableHandler(repo, sched),
		handler.NewAdminHandler(cfg, repo, engine, sched, cache),
		cache,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
