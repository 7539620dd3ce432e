package dashboard

import (
	"time"

	"gorm.io/gorm"

	"github.com/kdelaney/ghostline/internal/ghosting"
	"github.com/kdelaney/ghostline/internal/models"
	"github.com/kdelaney/ghostline/internal/store"
)

// SnapshotRow holds snapshot metadata for the index listing.
type SnapshotRow struct {
	ID            uint      `json:"id"`
	Label         string    `json:"label"`
	SourceFile    string    `json:"sourceFile"`
	TotalMessages int       `json:"totalMessages"`
	Participants  int       `json:"participants"`
	RangeStart    time.Time `json:"rangeStart"`
	RangeEnd      time.Time `json:"rangeEnd"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SnapshotList returns all stored snapshots, newest first.
func SnapshotList(db *gorm.DB) ([]SnapshotRow, error) {
	snaps, err := store.ListSnapshots(db)
	if err != nil {
		return nil, err
	}

	rows := make([]SnapshotRow, len(snaps))
	for i, s := range snaps {
		rows[i] = SnapshotRow{
			ID:            s.ID,
			Label:         s.Label,
			SourceFile:    s.SourceFile,
			TotalMessages: s.TotalMessages,
			Participants:  s.Participants,
			RangeStart:    s.RangeStart,
			RangeEnd:      s.RangeEnd,
			CreatedAt:     s.CreatedAt,
		}
	}
	return rows, nil
}

// LoadAnalytics rebuilds the full analytics object for one snapshot.
func LoadAnalytics(db *gorm.DB, id uint) (*models.Analytics, error) {
	snap, err := store.GetSnapshot(db, id)
	if err != nil {
		return nil, err
	}
	return store.DecodeAnalytics(snap)
}

// GhostingScores recomputes disengagement scores for every participant
// of a stored snapshot at the reference instant now.
func GhostingScores(db *gorm.DB, id uint, now time.Time) ([]ghosting.Score, error) {
	analytics, err := LoadAnalytics(db, id)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(analytics.Participants))
	for i, p := range analytics.Participants {
		names[i] = p.Name
	}
	return ghosting.ComputeAll(analytics.Messages, names, now), nil
}

// MonthRow summarizes one month for the detail page.
type MonthRow struct {
	MonthYear string
	Messages  int
}

// SnapshotDetail holds everything the detail page renders.
type SnapshotDetail struct {
	Row          SnapshotRow
	Participants []models.Participant
	Months       []MonthRow
	Scores       []ghosting.Score
}

// GetSnapshotDetail assembles the detail view for one snapshot.
func GetSnapshotDetail(db *gorm.DB, id uint, now time.Time) (*SnapshotDetail, error) {
	snap, err := store.GetSnapshot(db, id)
	if err != nil {
		return nil, err
	}
	analytics, err := store.DecodeAnalytics(snap)
	if err != nil {
		return nil, err
	}

	months := make([]MonthRow, len(analytics.MonthStats))
	for i, ms := range analytics.MonthStats {
		total := 0
		for _, n := range ms.MessageFrequency {
			total += n
		}
		months[i] = MonthRow{MonthYear: ms.MonthYear, Messages: total}
	}

	names := make([]string, len(analytics.Participants))
	for i, p := range analytics.Participants {
		names[i] = p.Name
	}

	return &SnapshotDetail{
		Row: SnapshotRow{
			ID:            snap.ID,
			Label:         snap.Label,
			SourceFile:    snap.SourceFile,
			TotalMessages: snap.TotalMessages,
			Participants:  len(analytics.Participants),
			RangeStart:    snap.RangeStart,
			RangeEnd:      snap.RangeEnd,
			CreatedAt:     snap.CreatedAt,
		},
		Participants: analytics.Participants,
		Months:       months,
		Scores:       ghosting.ComputeAll(analytics.Messages, names, now),
	}, nil
}
