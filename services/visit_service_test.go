package services

import (
	"testing"
	"time"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInInput(f *fixture) CheckInInput {
	return CheckInInput{
		VisitorID:    f.visitor.ID,
		CheckpointID: f.checkpoint.ID,
		ServiceID:    f.service.ID,
		Reason:       "meeting",
	}
}

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	visit, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)
	assert.Equal(t, f.visitor.ID, visit.VisitorID)
	assert.Nil(t, visit.EndAt)
	assert.False(t, visit.StartAt.IsZero())
}

func TestCheckInUnknownVisitor(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	input := checkInInput(f)
	input.VisitorID = 999
	_, err := svc.CheckIn(input)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestCheckInBlacklistedVisitor(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.NonDesirables().Create(&models.NonDesirable{
		VisitorID: f.visitor.ID,
		Reason:    "trespassing",
	}))
	svc := NewVisitService(f.store)

	_, err := svc.CheckIn(checkInInput(f))
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestCheckInUnknownReferences(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	input := checkInInput(f)
	input.CheckpointID = 999
	_, err := svc.CheckIn(input)
	assert.True(t, code.IsKind(err, code.KindValidation))

	input = checkInInput(f)
	input.ServiceID = 999
	_, err = svc.CheckIn(input)
	assert.True(t, code.IsKind(err, code.KindValidation))

	missing := uint(999)
	input = checkInInput(f)
	input.GroupRepresentativeID = &missing
	_, err = svc.CheckIn(input)
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestCheckInGroupRepresentative(t *testing.T) {
	f := newFixture(t)
	rep := f.addVisitor(t, "Moussa", "Kane")
	svc := NewVisitService(f.store)

	input := checkInInput(f)
	input.GroupRepresentativeID = &rep.ID
	visit, err := svc.CheckIn(input)
	require.NoError(t, err)
	require.NotNil(t, visit.GroupRepresentativeID)
	assert.Equal(t, rep.ID, *visit.GroupRepresentativeID)
}

func TestCheckInAlreadyInside(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	_, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)

	_, err = svc.CheckIn(checkInInput(f))
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestCheckOutThenReEnter(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	visit, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)

	closed, err := svc.CheckOut(visit.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, closed.EndAt)

	// checkout re-arms the visitor for a new visit
	second, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)
	assert.NotEqual(t, visit.ID, second.ID)
}

func TestCheckOutExplicitEndTime(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	visit, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)

	end := time.Now().Add(-30 * time.Minute).Truncate(time.Second)
	closed, err := svc.CheckOut(visit.ID, &end)
	require.NoError(t, err)
	require.NotNil(t, closed.EndAt)
	assert.True(t, closed.EndAt.Equal(end))
}

func TestCheckOutCompletedVisit(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	visit, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = svc.CheckOut(visit.ID, nil)
	require.NoError(t, err)

	_, err = svc.CheckOut(visit.ID, nil)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestCheckOutUnknownVisit(t *testing.T) {
	f := newFixture(t)
	svc := NewVisitService(f.store)

	_, err := svc.CheckOut(999, nil)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestVisitListStatusFilter(t *testing.T) {
	f := newFixture(t)
	other := f.addVisitor(t, "Fati", "Soumana")
	svc := NewVisitService(f.store)

	first, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = svc.CheckOut(first.ID, nil)
	require.NoError(t, err)

	input := checkInInput(f)
	input.VisitorID = other.ID
	_, err = svc.CheckIn(input)
	require.NoError(t, err)

	p := models.PaginationQuery{Page: 1, Limit: 10}

	_, total, err := svc.List(store.VisitFilter{}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(store.VisitFilter{Status: models.VisitStatusActive}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(store.VisitFilter{Status: models.VisitStatusCompleted}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = svc.List(store.VisitFilter{Status: "inside"}, p)
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestVisitStats(t *testing.T) {
	f := newFixture(t)
	other := f.addVisitor(t, "Fati", "Soumana")
	svc := NewVisitService(f.store)

	first, err := svc.CheckIn(checkInInput(f))
	require.NoError(t, err)
	_, err = svc.CheckOut(first.ID, nil)
	require.NoError(t, err)

	input := checkInInput(f)
	input.VisitorID = other.ID
	_, err = svc.CheckIn(input)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVisits)
	assert.Equal(t, int64(1), stats.ActiveVisits)
	assert.Equal(t, int64(1), stats.CompletedVisits)
}
