package models

import "time"

// Appointment statuses
const (
	AppointmentPending   = "pending"
	AppointmentValidated = "validated"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduled future visit. The QR code is handed to
// the visitor and scanned at the checkpoint.
type Appointment struct {
	BaseModel
	VisitorID     uint      `gorm:"not null;index" json:"visitor_id"`
	ServiceID     uint      `gorm:"not null;index" json:"service_id"`
	PersonVisited string    `gorm:"type:varchar(100)" json:"person_visited,omitempty"`
	Reason        string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	DateStart     time.Time `gorm:"not null" json:"date_start"`
	DateEnd       time.Time `gorm:"not null" json:"date_end"`
	QRCode        string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"qr_code"`
	Status        string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	// Relations
	Visitor *Visitor `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
