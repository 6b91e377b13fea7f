package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"amarthrift-backend/internal/models"
)

// ActivityService appends and lists back-office activity records
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new activity service
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends an activity entry. Failures are logged and swallowed;
// the log must never block the operation it describes.
func (s *ActivityService) Record(action, details string) {
	query := "INSERT INTO activity_logs (id, action, details, created_at) VALUES (?, ?, ?, ?)"
	if _, err := s.db.Exec(query, uuid.New().String(), action, details, time.Now()); err != nil {
		log.Printf("Warning: failed to record activity %s: %v", action, err)
	}
}

// List retrieves activity entries, newest first
func (s *ActivityService) List(limit, offset int) ([]*models.ActivityLog, error) {
	query := "SELECT id, action, details, created_at FROM activity_logs ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		entry := &models.ActivityLog{}
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
