package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/models"
)

// Operation names used by the permission table. Routes declare the
// operation they perform; the table decides which roles may run it.
const (
	OpVisitorRead      = "visitor:read"
	OpVisitorWrite     = "visitor:write"
	OpVisitRead        = "visit:read"
	OpVisitWrite       = "visit:write"
	OpBlacklistRead    = "blacklist:read"
	OpBlacklistWrite   = "blacklist:write"
	OpIncidentRead     = "incident:read"
	OpIncidentWrite    = "incident:write"
	OpSOSRead          = "sos:read"
	OpSOSWrite         = "sos:write"
	OpSiteManage       = "site:manage"
	OpSiteRead         = "site:read"
	OpCheckpointManage = "checkpoint:manage"
	OpCheckpointRead   = "checkpoint:read"
	OpServiceManage    = "service:manage"
	OpServiceRead      = "service:read"
	OpAgentManage      = "agent:manage"
	OpAgentRead        = "agent:read"
	OpAppointmentRead  = "appointment:read"
	OpAppointmentWrite = "appointment:write"
	OpFileRead         = "file:read"
	OpFileWrite        = "file:write"
	OpUserManage       = "user:manage"
	OpStatsRead        = "stats:read"
)

var (
	allRoles = []string{
		models.RoleAdmin, models.RoleAgentGestion,
		models.RoleAgentControle, models.RoleChefService,
	}
	operationalRoles = []string{
		models.RoleAdmin, models.RoleAgentGestion, models.RoleAgentControle,
	}
	managementRoles = []string{models.RoleAdmin, models.RoleAgentGestion}
	adminOnly       = []string{models.RoleAdmin}
)

// permissions maps every operation to the roles allowed to perform
// it. An operation missing from the table is denied for everyone.
var permissions = map[string][]string{
	OpVisitorRead:      allRoles,
	OpVisitorWrite:     operationalRoles,
	OpVisitRead:        allRoles,
	OpVisitWrite:       operationalRoles,
	OpBlacklistRead:    allRoles,
	OpBlacklistWrite:   managementRoles,
	OpIncidentRead:     allRoles,
	OpIncidentWrite:    allRoles,
	OpSOSRead:          allRoles,
	OpSOSWrite:         operationalRoles,
	OpSiteRead:         allRoles,
	OpSiteManage:       adminOnly,
	OpCheckpointRead:   allRoles,
	OpCheckpointManage: adminOnly,
	OpServiceRead:      allRoles,
	OpServiceManage:    adminOnly,
	OpAgentRead:        managementRoles,
	OpAgentManage:      adminOnly,
	OpAppointmentRead:  allRoles,
	OpAppointmentWrite: operationalRoles,
	OpFileRead:         allRoles,
	OpFileWrite:        operationalRoles,
	OpUserManage:       adminOnly,
	OpStatsRead:        managementRoles,
}

// Allowed reports whether role may perform op. Unknown operations and
// unknown roles are denied.
func Allowed(role, op string) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// RequirePermission gates a route on the permission table. It runs
// after Authenticate, which put the role in the context.
func RequirePermission(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if !Allowed(role, op) {
			response.Fail(c, code.Authorization("role %s may not perform %s", role, op))
			c.Abort()
			return
		}
		c.Next()
	}
}
