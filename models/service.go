package models

// Service is the organizational unit visits, appointments and
// incidents are filed against
type Service struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description,omitempty"`

	// Relations
	Visits       []Visit       `gorm:"foreignKey:ServiceID" json:"visits,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ServiceID" json:"appointments,omitempty"`
	Incidents    []Incident    `gorm:"foreignKey:ServiceID" json:"incidents,omitempty"`
}
