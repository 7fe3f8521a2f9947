package services

import (
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVisitor(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitorService(f.store)

	visitor, err := svc.Create(VisitorInput{Firstname: "Moussa", Lastname: "Kane", Company: "Airtel"})
	require.NoError(t, err)
	assert.NotZero(t, visitor.ID)

	_, err = svc.Create(VisitorInput{Firstname: "  ", Lastname: "Kane"})
	assert.True(t, code.IsKind(err, code.KindValidation))

	missing := uint(999)
	_, err = svc.Create(VisitorInput{Firstname: "Moussa", Lastname: "Kane", FileID: &missing})
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestVisitorDetailDerivedState(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitorService(f.store)
	visits := NewVisitService(f.store)
	blacklist := NewNonDesirableService(f.store)

	detail, err := svc.GetByID(f.visitor.ID)
	require.NoError(t, err)
	assert.False(t, detail.Blacklisted)
	assert.False(t, detail.HasActiveVisit)

	_, err = visits.CheckIn(checkInInput(f))
	require.NoError(t, err)

	detail, err = svc.GetByID(f.visitor.ID)
	require.NoError(t, err)
	assert.True(t, detail.HasActiveVisit)

	other := f.addVisitor(t, "Fati", "Soumana")
	entry, err := blacklist.Blacklist(BlacklistInput{VisitorID: other.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)

	detail, err = svc.GetByID(other.ID)
	require.NoError(t, err)
	assert.True(t, detail.Blacklisted)
	require.NotNil(t, detail.BlacklistEntry)
	assert.Equal(t, entry.ID, detail.BlacklistEntry.ID)
}

func TestVisitorHistory(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitorService(f.store)
	visits := NewVisitService(f.store)
	incidents := NewIncidentService(f.store, testConfig())

	visit, err := visits.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = visits.CheckOut(visit.ID, nil)
	require.NoError(t, err)
	_, err = incidents.Report(incidentInput(f), reporterID)
	require.NoError(t, err)

	history, err := svc.History(f.visitor.ID, 0) // window defaults
	require.NoError(t, err)
	assert.Equal(t, 30, history.Days)
	assert.Equal(t, int64(1), history.VisitCount)
	assert.Equal(t, int64(1), history.IncidentCount)
	assert.Equal(t, int64(0), history.AppointmentCount)

	_, err = svc.History(999, 7)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestVisitorStats(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitorService(f.store)
	blacklist := NewNonDesirableService(f.store)

	other := f.addVisitor(t, "Fati", "Soumana")
	_, err := blacklist.Blacklist(BlacklistInput{VisitorID: other.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Blacklisted)
	assert.Equal(t, int64(2), stats.WithoutFile)
	assert.Equal(t, int64(1), stats.Companies["Orange"])
}

func TestVisitorList(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitorService(f.store)
	f.addVisitor(t, "Fati", "Soumana")

	p := models.PaginationQuery{Page: 1, Limit: 10}

	_, total, err := svc.List(store.VisitorFilter{}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(store.VisitorFilter{Search: "diallo"}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(store.VisitorFilter{Company: "Orange"}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
