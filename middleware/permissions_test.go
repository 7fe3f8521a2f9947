package middleware

import (
	"testing"

	"github.com/bako110/Sonaby/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		role string
		op   string
		want bool
	}{
		{"admin manages users", models.RoleAdmin, OpUserManage, true},
		{"admin manages sites", models.RoleAdmin, OpSiteManage, true},
		{"gestion reads visitors", models.RoleAgentGestion, OpVisitorRead, true},
		{"gestion writes visits", models.RoleAgentGestion, OpVisitWrite, true},
		{"gestion cannot manage sites", models.RoleAgentGestion, OpSiteManage, false},
		{"gestion cannot manage users", models.RoleAgentGestion, OpUserManage, false},
		{"controle writes visits", models.RoleAgentControle, OpVisitWrite, true},
		{"controle triggers sos", models.RoleAgentControle, OpSOSWrite, true},
		{"controle cannot blacklist", models.RoleAgentControle, OpBlacklistWrite, false},
		{"controle cannot read stats", models.RoleAgentControle, OpStatsRead, false},
		{"controle cannot list agents", models.RoleAgentControle, OpAgentRead, false},
		{"chef reads visits", models.RoleChefService, OpVisitRead, true},
		{"chef reports incidents", models.RoleChefService, OpIncidentWrite, true},
		{"chef cannot check in", models.RoleChefService, OpVisitWrite, false},
		{"chef cannot trigger sos", models.RoleChefService, OpSOSWrite, false},
		{"gestion manages blacklist", models.RoleAgentGestion, OpBlacklistWrite, true},
		{"gestion reads stats", models.RoleAgentGestion, OpStatsRead, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.op))
		})
	}
}

func TestAllowedFailsClosed(t *testing.T) {
	assert.False(t, Allowed(models.RoleAdmin, "unknown:op"))
	assert.False(t, Allowed("UNKNOWN_ROLE", OpVisitorRead))
	assert.False(t, Allowed("", OpVisitorRead))
}
