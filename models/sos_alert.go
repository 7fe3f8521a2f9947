package models

import "time"

// SOSAlert is a panic alert raised from a checkpoint. At most one
// active alert may exist per checkpoint (service check plus a unique
// index on the active_checkpoint_id generated column for races).
type SOSAlert struct {
	BaseModel
	CheckpointID uint       `gorm:"not null;index" json:"checkpoint_id"`
	SentBy       uint       `gorm:"not null" json:"sent_by"`
	Message      string     `gorm:"type:varchar(255)" json:"message,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy   *uint      `json:"resolved_by,omitempty"`

	// Relations
	Checkpoint *Checkpoint `gorm:"foreignKey:CheckpointID" json:"checkpoint,omitempty"`
	Sender     *User       `gorm:"foreignKey:SentBy" json:"sender,omitempty"`
}

// SOSStats aggregates alerts for the statistics endpoint
type SOSStats struct {
	TotalAlerts         int64            `json:"total_alerts"`
	ActiveAlerts        int64            `json:"active_alerts"`
	ResolvedAlerts      int64            `json:"resolved_alerts"`
	AlertsPerCheckpoint map[uint]int64   `json:"alerts_per_checkpoint"`
	AlertsByDay         map[string]int64 `json:"alerts_by_day"`
}
