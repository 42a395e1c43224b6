package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/booking"
	"github.com/iliyamo/practice-room-reservation/internal/config"
	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
	"github.com/iliyamo/practice-room-reservation/internal/utils"
)

// testStack builds handlers over a store that never becomes ready, which
// is exactly the state the fail-fast paths need to be tested in.
func testStack(t *testing.T, blocks []model.ClassBlock) (*ReservationHandler, *BlocksHandler, *TimetableHandler, *AdminHandler, config.Config) {
	t.Helper()
	db := &database.DB{}
	repo := repository.NewReservationRepo(db)
	sched := schedule.New(blocks)
	engine := booking.NewEngine(repo, sched)

	hash, err := utils.HashSecret("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		AdminCodeHash:    hash,
		JWTSecret:        "test-secret",
		AdminTokenTTLMin: 5,
	}

	return NewReservationHandler(repo, engine, nil),
		NewBlocksHandler(sched),
		NewTimetableHandler(repo, sched),
		NewAdminHandler(cfg, repo, engine, sched, nil),
		cfg
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListRequiresDate(t *testing.T) {
	res, _, _, _, _ := testStack(t, nil)
	e := echo.New()
	e.GET("/api/reservations", res.List)

	rec := doJSON(e, http.MethodGet, "/api/reservations", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: got %d, want 400", rec.Code)
	}
}

func TestListNotReady(t *testing.T) {
	res, _, _, _, _ := testStack(t, nil)
	e := echo.New()
	e.GET("/api/reservations", res.List)

	rec := doJSON(e, http.MethodGet, "/api/reservations?date=2025-03-11", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store not ready: got %d, want 503", rec.Code)
	}
}

func TestCreateValidationBeforeStore(t *testing.T) {
	res, _, _, _, _ := testStack(t, nil)
	e := echo.New()
	e.POST("/api/reservations", res.Create)

	// Field validation fires before the store is consulted, so a 400
	// comes back even though the store is not ready.
	rec := doJSON(e, http.MethodPost, "/api/reservations",
		`{"room":"2","date":"2025-03-11","start":"15:00","end":"14:00","student":"Lee"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("end before start: got %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/reservations",
		`{"room":"","date":"2025-03-11","start":"14:00","end":"15:00","student":"Lee"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing room: got %d, want 400", rec.Code)
	}
}

func TestCreateClassConflictBeforeStore(t *testing.T) {
	// 2025-03-10 is a Monday; room 1 has a Monday class 09:00-12:00.
	res, _, _, _, _ := testStack(t, []model.ClassBlock{
		{Weekday: 1, Room: "1", Start: "09:00", End: "12:00"},
	})
	e := echo.New()
	e.POST("/api/reservations", res.Create)

	rec := doJSON(e, http.MethodPost, "/api/reservations",
		`{"room":"1","date":"2025-03-10","start":"09:00","end":"10:00","student":"Kim"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("class conflict: got %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body["error"], "class") {
		t.Fatalf("expected a class-conflict message, got %q", body["error"])
	}
}

func TestCreateAcceptsNumericRoom(t *testing.T) {
	// 2025-03-10 is a Monday; room 1 has a Monday class 09:00-12:00.
	res, _, _, _, _ := testStack(t, []model.ClassBlock{
		{Weekday: 1, Room: "1", Start: "09:00", End: "12:00"},
	})
	e := echo.New()
	e.POST("/api/reservations", res.Create)

	// A numeric room binds to the same decimal string, so it collides
	// with the class block exactly like the string form does.
	rec := doJSON(e, http.MethodPost, "/api/reservations",
		`{"room":1,"date":"2025-03-10","start":"09:00","end":"10:00","student":"Kim"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("numeric blocked room: got %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body["error"], "class") {
		t.Fatalf("expected a class-conflict message, got %q", body["error"])
	}

	// A numeric unblocked room passes validation and reaches the store,
	// which is not ready in this stack.
	rec = doJSON(e, http.MethodPost, "/api/reservations",
		`{"room":2,"date":"2025-03-10","start":"09:00","end":"10:00","student":"Kim"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("numeric clear room: got %d, want 503", rec.Code)
	}
}

func TestDeleteRejectsBadID(t *testing.T) {
	res, _, _, _, _ := testStack(t, nil)
	e := echo.New()
	e.DELETE("/api/reservations/:id", res.Delete)

	rec := doJSON(e, http.MethodDelete, "/api/reservations/abc", `{"manageCode":"1234"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: got %d, want 400", rec.Code)
	}
}

func TestBlocksList(t *testing.T) {
	_, blocks, _, _, _ := testStack(t, []model.ClassBlock{
		{Weekday: 1, Room: "1", Start: "09:00", End: "12:00"},
		{Weekday: 2, Room: "3", Start: "14:00", End: "15:00"},
	})
	e := echo.New()
	e.GET("/api/blocks", blocks.List)

	rec := doJSON(e, http.MethodGet, "/api/blocks?date=2025-03-10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var got []model.ClassBlock
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Room != "1" {
		t.Fatalf("expected the Monday block for room 1, got %+v", got)
	}

	// A date with no classes yields an empty array, not null or an error.
	rec = doJSON(e, http.MethodGet, "/api/blocks?date=2025-03-12", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty day: got %d %q, want 200 []", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/blocks", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: got %d, want 400", rec.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	_, _, _, admin, _ := testStack(t, nil)
	e := echo.New()
	e.POST("/api/admin/login", admin.Login)

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"adminCode":"wrong"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong code: got %d, want 403", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/admin/login", `{"adminCode":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("correct code: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["token"] == "" {
		t.Fatal("expected a token in the login response")
	}
}

func TestAdminForceCancelRequiresCode(t *testing.T) {
	_, _, _, admin, _ := testStack(t, nil)
	e := echo.New()
	e.DELETE("/api/admin/reservations/:id", admin.ForceCancel)

	rec := doJSON(e, http.MethodDelete, "/api/admin/reservations/1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing adminCode: got %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/admin/reservations/1", `{"adminCode":"nope"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong adminCode: got %d, want 403", rec.Code)
	}
}

func TestReplaceClassScheduleValidatesRows(t *testing.T) {
	_, blocksH, _, admin, _ := testStack(t, nil)
	e := echo.New()
	e.POST("/api/admin/class-schedule", admin.ReplaceClassSchedule)
	e.GET("/api/blocks", blocksH.List)

	rec := doJSON(e, http.MethodPost, "/api/admin/class-schedule",
		`{"adminCode":"s3cret","lessons":[{"weekday":9,"room":"1","start":"09:00","end":"10:00"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad weekday: got %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/admin/class-schedule",
		`{"adminCode":"s3cret","lessons":[{"weekday":1,"room":"2","start":"09:00","end":"10:30"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid replace: got %d, body %s", rec.Code, rec.Body.String())
	}

	// The swap is visible immediately on the blocks endpoint.
	rec = doJSON(e, http.MethodGet, "/api/blocks?date=2025-03-10", "")
	var got []model.ClassBlock
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Room != "2" || got[0].End != "10:30" {
		t.Fatalf("expected the replaced Monday block, got %+v", got)
	}
}

func TestTimetableRequiresDate(t *testing.T) {
	_, _, tt, _, _ := testStack(t, nil)
	e := echo.New()
	e.GET("/api/timetable", tt.Get)

	rec := doJSON(e, http.MethodGet, "/api/timetable", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: got %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/timetable?date=2025-03-11", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store not ready: got %d, want 503", rec.Code)
	}
}
