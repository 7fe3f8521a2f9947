package services

import (
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deleting an entity that visits or appointments still reference must
// be rejected, never cascaded.

func TestDeleteVisitorWithVisitHistory(t *testing.T) {
	f := newFixture(t)
	visits := NewVisitService(f.store)
	visitors := NewVisitorService(f.store)

	visit, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = visits.CheckOut(visit.ID, nil)
	require.NoError(t, err)

	err = visitors.Delete(f.visitor.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))

	// clean visitors delete fine
	other := f.addVisitor(t, "Fati", "Soumana")
	assert.NoError(t, visitors.Delete(other.ID))
}

func TestDeleteSiteWithCheckpoints(t *testing.T) {
	f := newFixture(t)
	sites := NewSiteService(f.store)

	err := sites.Delete(f.site.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))

	empty, err := sites.Create(SiteInput{Name: "Annexe"})
	require.NoError(t, err)
	assert.NoError(t, sites.Delete(empty.ID))
}

func TestDeleteCheckpointWithVisits(t *testing.T) {
	f := newFixture(t)
	visits := NewVisitService(f.store)
	checkpoints := NewCheckpointService(f.store)

	_, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)

	err = checkpoints.Delete(f.checkpoint.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))

	unused, err := checkpoints.Create(CheckpointInput{Name: "Quai", SiteID: f.site.ID, SOSIdentifier: "CP-DOCK"})
	require.NoError(t, err)
	assert.NoError(t, checkpoints.Delete(unused.ID))
}

func TestDeleteServiceWithVisits(t *testing.T) {
	f := newFixture(t)
	visits := NewVisitService(f.store)
	orgServices := NewServiceService(f.store)

	_, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)

	err = orgServices.Delete(f.service.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestServiceActivity(t *testing.T) {
	f := newFixture(t)
	visits := NewVisitService(f.store)
	incidents := NewIncidentService(f.store, testConfig())
	orgServices := NewServiceService(f.store)

	_, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = incidents.Report(incidentInput(f), reporterID)
	require.NoError(t, err)

	activity, err := orgServices.Activity(f.service.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activity.VisitCount)
	assert.Equal(t, int64(1), activity.IncidentCount)
	assert.Equal(t, int64(0), activity.AppointmentCount)

	_, err = orgServices.Activity(999, 7)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestDuplicateSOSIdentifier(t *testing.T) {
	f := newFixture(t)
	checkpoints := NewCheckpointService(f.store)

	_, err := checkpoints.Create(CheckpointInput{Name: "Autre", SiteID: f.site.ID, SOSIdentifier: "CP-MAIN"})
	assert.True(t, code.IsKind(err, code.KindConflict))
}
