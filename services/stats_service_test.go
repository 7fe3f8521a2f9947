package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	visits := NewVisitService(f.store)
	blacklist := NewNonDesirableService(f.store)
	svc := NewStatsService(f.store)

	other := f.addVisitor(t, "Fati", "Soumana")
	_, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = blacklist.Blacklist(BlacklistInput{VisitorID: other.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)

	stats, err := svc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Visitors)
	assert.Equal(t, int64(1), stats.Blacklisted)
	assert.Equal(t, int64(1), stats.Sites)
	assert.Equal(t, int64(1), stats.Checkpoints)
	assert.Equal(t, int64(1), stats.Services)
	require.NotNil(t, stats.Visits)
	assert.Equal(t, int64(1), stats.Visits.ActiveVisits)
	require.NotNil(t, stats.SOS)
	assert.Equal(t, int64(0), stats.SOS.TotalAlerts)
}
