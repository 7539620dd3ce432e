package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kdelaney/ghostline/internal/chatparse"
	"github.com/kdelaney/ghostline/internal/ghosting"
	"github.com/kdelaney/ghostline/internal/store"
)

const dashboardTestChat = "1/5/24, 9:00 AM - Alice: Hi\n" +
	"1/5/24, 9:05 AM - Bob: Hey there\n" +
	"2/9/24, 8:00 PM - Alice: long time\n"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open(:memory:) error = %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("store.AutoMigrate() error = %v", err)
	}
	return db
}

func seedSnapshot(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	a, err := chatparse.Parse(dashboardTestChat, false)
	if err != nil {
		t.Fatalf("chatparse.Parse() error = %v", err)
	}
	snap, err := store.SaveSnapshot(db, "test", "chat.txt", false, a)
	if err != nil {
		t.Fatalf("store.SaveSnapshot() error = %v", err)
	}
	return snap.ID
}

func testRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	tmpl, err := parseTemplates()
	if err != nil {
		t.Fatalf("parseTemplates() error = %v", err)
	}
	router.SetHTMLTemplate(tmpl)
	registerRoutes(router, db)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestStart_NilDB(t *testing.T) {
	err := Start(context.Background(), StartOpts{})
	if err == nil {
		t.Fatal("Start() error = nil, want db-required error")
	}
	if !strings.Contains(err.Error(), "db is required") {
		t.Errorf("error = %v, want db-required message", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		t.Fatalf("embedded layout.html missing: %v", err)
	}
	if !strings.Contains(string(data), "Ghostline") {
		t.Error("layout.html does not mention Ghostline")
	}
}

func TestIndexPage(t *testing.T) {
	db := testDB(t)
	seedSnapshot(t, db)

	w := get(testRouter(t, db), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "chat.txt") {
		t.Error("index page does not list the stored snapshot")
	}
}

func TestSnapshotDetailPage(t *testing.T) {
	db := testDB(t)
	id := seedSnapshot(t, db)

	w := get(testRouter(t, db), "/snapshots/1")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /snapshots/%d status = %d, want 200", id, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Alice") || !strings.Contains(body, "Bob") {
		t.Error("detail page does not list participants")
	}
}

func TestSnapshotDetailPage_NotFound(t *testing.T) {
	db := testDB(t)

	w := get(testRouter(t, db), "/snapshots/42")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAPISnapshotList(t *testing.T) {
	db := testDB(t)
	seedSnapshot(t, db)

	w := get(testRouter(t, db), "/api/snapshots")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var rows []SnapshotRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", rows[0].TotalMessages)
	}
}

func TestAPISnapshot(t *testing.T) {
	db := testDB(t)
	id := seedSnapshot(t, db)

	w := get(testRouter(t, db), "/api/snapshots/1")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/snapshots/%d status = %d, want 200", id, w.Code)
	}

	var payload struct {
		TotalMessages int `json:"totalMessages"`
		Participants  []struct {
			Name string `json:"name"`
		} `json:"participants"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.TotalMessages != 3 {
		t.Errorf("totalMessages = %d, want 3", payload.TotalMessages)
	}
	if len(payload.Participants) != 2 {
		t.Errorf("len(participants) = %d, want 2", len(payload.Participants))
	}
}

func TestAPISnapshot_BadID(t *testing.T) {
	db := testDB(t)

	w := get(testRouter(t, db), "/api/snapshots/banana")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAPIGhosting(t *testing.T) {
	db := testDB(t)
	seedSnapshot(t, db)

	// Pin now just after the chat so both windows are populated.
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	w := get(testRouter(t, db), "/api/snapshots/1/ghosting?now="+now)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var scores []ghosting.Score
	if err := json.Unmarshal(w.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("len(scores) = %d, want 2", len(scores))
	}
	for _, s := range scores {
		if s.Overall < 0 || s.Overall > 100 {
			t.Errorf("%s Overall = %d, want within [0, 100]", s.Participant, s.Overall)
		}
		if s.Risk == "" {
			t.Errorf("%s Risk empty", s.Participant)
		}
	}
}

func TestAPIGhosting_BadNow(t *testing.T) {
	db := testDB(t)
	seedSnapshot(t, db)

	w := get(testRouter(t, db), "/api/snapshots/1/ghosting?now=yesterday")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
