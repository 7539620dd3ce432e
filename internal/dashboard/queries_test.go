package dashboard

import (
	"testing"
	"time"
)

func TestLoadAnalytics(t *testing.T) {
	db := testDB(t)
	id := seedSnapshot(t, db)

	a, err := LoadAnalytics(db, id)
	if err != nil {
		t.Fatalf("LoadAnalytics() error = %v", err)
	}
	if a.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", a.TotalMessages)
	}
}

func TestLoadAnalytics_Missing(t *testing.T) {
	db := testDB(t)

	if _, err := LoadAnalytics(db, 7); err == nil {
		t.Error("LoadAnalytics(7) error = nil, want not-found error")
	}
}

func TestGetSnapshotDetail(t *testing.T) {
	db := testDB(t)
	id := seedSnapshot(t, db)

	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	detail, err := GetSnapshotDetail(db, id, now)
	if err != nil {
		t.Fatalf("GetSnapshotDetail() error = %v", err)
	}

	if detail.Row.ID != id {
		t.Errorf("Row.ID = %d, want %d", detail.Row.ID, id)
	}
	if len(detail.Participants) != 2 {
		t.Errorf("len(Participants) = %d, want 2", len(detail.Participants))
	}
	if len(detail.Scores) != 2 {
		t.Errorf("len(Scores) = %d, want 2", len(detail.Scores))
	}

	// Two months in the fixture: two messages in January, one in February.
	if len(detail.Months) != 2 {
		t.Fatalf("len(Months) = %d, want 2", len(detail.Months))
	}
	if detail.Months[0].MonthYear != "Jan 2024" || detail.Months[0].Messages != 2 {
		t.Errorf("Months[0] = %+v, want Jan 2024 with 2 messages", detail.Months[0])
	}
	if detail.Months[1].MonthYear != "Feb 2024" || detail.Months[1].Messages != 1 {
		t.Errorf("Months[1] = %+v, want Feb 2024 with 1 message", detail.Months[1])
	}
}

func TestGhostingScores_WindowSensitivity(t *testing.T) {
	db := testDB(t)
	id := seedSnapshot(t, db)

	// With now far past the chat, no messages fall in either window.
	farFuture := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	scores, err := GhostingScores(db, id, farFuture)
	if err != nil {
		t.Fatalf("GhostingScores() error = %v", err)
	}
	for _, s := range scores {
		if s.Overall != 0 {
			t.Errorf("%s Overall = %d with empty windows, want 0", s.Participant, s.Overall)
		}
	}
}
