package models

// Identity document types accepted at registration
const (
	IDTypeCNI           = "CNI"
	IDTypePasseport     = "PASSEPORT"
	IDTypePermisConduite = "PERMIS_CONDUITE"
	IDTypeCarteSejour   = "CARTE_SEJOUR"
	IDTypeAutre         = "AUTRE"
)

// Visitor is a registered visitor. The blacklist status is never
// stored on this row; it is derived from the existence of a
// NonDesirable entry.
type Visitor struct {
	BaseModel
	Firstname string `gorm:"type:varchar(50);not null" json:"firstname"`
	Lastname  string `gorm:"type:varchar(50);not null" json:"lastname"`
	Email     string `gorm:"type:varchar(100)" json:"email,omitempty"`
	Phone     string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Company   string `gorm:"type:varchar(100)" json:"company,omitempty"`
	IDType    string `gorm:"type:varchar(20)" json:"id_type,omitempty"`
	IDNumber  string `gorm:"type:varchar(50)" json:"id_number,omitempty"`
	FileID    *uint  `json:"file_id,omitempty"` // supporting document (photo / id scan)

	// Relations
	File          *File          `gorm:"foreignKey:FileID" json:"file,omitempty"`
	Visits        []Visit        `gorm:"foreignKey:VisitorID" json:"visits,omitempty"`
	Appointments  []Appointment  `gorm:"foreignKey:VisitorID" json:"appointments,omitempty"`
	Incidents     []Incident     `gorm:"foreignKey:VisitorID" json:"incidents,omitempty"`
	NonDesirables []NonDesirable `gorm:"foreignKey:VisitorID" json:"non_desirables,omitempty"`
}
