package models

import "time"

// Visit statuses used by list filters
const (
	VisitStatusAll       = "all"
	VisitStatusActive    = "active"
	VisitStatusCompleted = "completed"
)

// Visit records one visitor passage through a checkpoint. A visit is
// active while EndAt is NULL; at most one active visit may exist per
// visitor (enforced here by the service and, against races, by a
// unique index on the active_visitor_id generated column).
type Visit struct {
	BaseModel
	VisitorID             uint       `gorm:"not null;index" json:"visitor_id"`
	CheckpointID          uint       `gorm:"not null;index" json:"checkpoint_id"`
	ServiceID             uint       `gorm:"not null;index" json:"service_id"`
	GroupRepresentativeID *uint      `json:"group_representative_id,omitempty"`
	Reason                string     `gorm:"type:varchar(255)" json:"reason,omitempty"`
	PersonVisited         string     `gorm:"type:varchar(100)" json:"person_visited,omitempty"`
	StartAt               time.Time  `gorm:"not null" json:"start_at"`
	EndAt                 *time.Time `json:"end_at,omitempty"`

	// Relations
	Visitor             *Visitor    `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Checkpoint          *Checkpoint `gorm:"foreignKey:CheckpointID" json:"checkpoint,omitempty"`
	Service             *Service    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	GroupRepresentative *Visitor    `gorm:"foreignKey:GroupRepresentativeID" json:"group_representative,omitempty"`
}

// IsActive reports whether the visit is still in progress
func (v *Visit) IsActive() bool {
	return v.EndAt == nil
}

// VisitStats aggregates the ledger for the statistics endpoint
type VisitStats struct {
	TotalVisits         int64            `json:"total_visits"`
	ActiveVisits        int64            `json:"active_visits"`
	CompletedVisits     int64            `json:"completed_visits"`
	VisitsPerService    map[uint]int64   `json:"visits_per_service"`
	VisitsPerCheckpoint map[uint]int64   `json:"visits_per_checkpoint"`
	VisitsByDay         map[string]int64 `json:"visits_by_day"`
}
