package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/kdelaney/ghostline/internal/models"
)

// SaveSnapshot serializes an analytics object and persists it with its
// run metadata. Timestamps inside the payload marshal as RFC 3339, so
// the stored JSON round-trips cleanly on load.
func SaveSnapshot(db *gorm.DB, label, sourceFile string, includeMedia bool, a *models.Analytics) (*models.Snapshot, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("store: encode analytics: %w", err)
	}

	snap := models.Snapshot{
		Label:         label,
		SourceFile:    sourceFile,
		IncludeMedia:  includeMedia,
		TotalMessages: a.TotalMessages,
		MediaMessages: a.MediaMessages,
		Participants:  len(a.Participants),
		RangeStart:    a.DateRange.Start,
		RangeEnd:      a.DateRange.End,
		Payload:       string(payload),
	}
	if err := db.Create(&snap).Error; err != nil {
		return nil, fmt.Errorf("store: save snapshot: %w", err)
	}
	return &snap, nil
}

// ListSnapshots returns all snapshots, newest first, without payloads.
func ListSnapshots(db *gorm.DB) ([]models.Snapshot, error) {
	var snaps []models.Snapshot
	if err := db.Omit("payload").Order("created_at DESC").Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	return snaps, nil
}

// GetSnapshot loads one snapshot row by ID, payload included.
func GetSnapshot(db *gorm.DB, id uint) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := db.First(&snap, id).Error; err != nil {
		return nil, fmt.Errorf("store: snapshot %d: %w", id, err)
	}
	return &snap, nil
}

// DecodeAnalytics rebuilds the analytics object from a snapshot payload.
func DecodeAnalytics(snap *models.Snapshot) (*models.Analytics, error) {
	var a models.Analytics
	if err := json.Unmarshal([]byte(snap.Payload), &a); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %d: %w", snap.ID, err)
	}
	return &a, nil
}

// DeleteSnapshot removes a snapshot by ID.
func DeleteSnapshot(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Snapshot{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete snapshot %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store: snapshot %d not found", id)
	}
	return nil
}
