package models

// Staff roles. Role names are stored as-is in the users table and in
// JWT claims; the permission table in the middleware package decides
// what each role may do.
const (
	RoleAdmin         = "ADMIN"
	RoleAgentGestion  = "AGENT_GESTION"
	RoleAgentControle = "AGENT_CONTROLE"
	RoleChefService   = "CHEF_SERVICE"
)

// ValidRoles lists every role the system accepts
var ValidRoles = []string{RoleAdmin, RoleAgentGestion, RoleAgentControle, RoleChefService}

// IsValidRole reports whether role is one of the known staff roles
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is a staff account. Visitors are not users; they never log in.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(50);not null" json:"last_name"`
	Phone        string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         string `gorm:"type:varchar(20);not null;default:AGENT_GESTION" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	// Relations
	Incidents     []Incident     `gorm:"foreignKey:ReportedBy" json:"incidents,omitempty"`
	NonDesirables []NonDesirable `gorm:"foreignKey:ReportedBy" json:"non_desirables,omitempty"`
	SOSAlerts     []SOSAlert     `gorm:"foreignKey:SentBy" json:"sos_alerts,omitempty"`
}
