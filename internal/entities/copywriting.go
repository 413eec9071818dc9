package entities

import (
	"errors"
	"fmt"
	"time"
)

// CopywritingTable is the collection every record of the app lives in.
const CopywritingTable = "copywriting"

// ErrNotFound is returned by content stores when no row matches the requested ID.
var ErrNotFound = errors.New("copywriting not found")

type CopywritingStatus string

const (
	StatusPending  CopywritingStatus = "pending"  // Submitted, waiting for a moderator
	StatusApproved CopywritingStatus = "approved" // Visible on the public page
	StatusRejected CopywritingStatus = "rejected"
)

// Valid reports whether s is one of the moderation states known to the store.
func (s CopywritingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts raw input into a CopywritingStatus.
// An empty string yields StatusPending.
func ParseStatus(raw string) (CopywritingStatus, error) {
	if raw == "" {
		return StatusPending, nil
	}
	status := CopywritingStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return status, nil
}

// Copywriting is a stored record. The hosted store owns its lifecycle;
// the local SQLite backend mirrors the same shape.
type Copywriting struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	Status    CopywritingStatus `gorm:"size:20;index;not null" json:"status"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Copywriting) TableName() string {
	return CopywritingTable
}

// CopywritingInput is the insert payload: exactly the columns the client sets.
type CopywritingInput struct {
	Content string            `json:"content"`
	Status  CopywritingStatus `json:"status"`
}

// ListFilter narrows List queries. Zero Status means all states.
type ListFilter struct {
	Status CopywritingStatus
	Limit  int
	Offset int
}
