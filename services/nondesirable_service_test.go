package services

import (
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklist(t *testing.T) {
	f := newFixture(t)
	svc := NewNonDesirableService(f.store)

	entry, err := svc.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)
	assert.Equal(t, "theft", entry.Reason)
	assert.Equal(t, reporterID, entry.ReportedBy)

	_, err = svc.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "again"}, reporterID)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestBlacklistValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewNonDesirableService(f.store)

	_, err := svc.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "  "}, reporterID)
	assert.True(t, code.IsKind(err, code.KindValidation))

	_, err = svc.Blacklist(BlacklistInput{VisitorID: 999, Reason: "theft"}, reporterID)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestUnblacklistRestoresAccess(t *testing.T) {
	f := newFixture(t)
	svc := NewNonDesirableService(f.store)
	visits := NewVisitService(f.store)

	entry, err := svc.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)

	_, err = visits.CheckIn(checkInInput(f))
	require.True(t, code.IsKind(err, code.KindConflict))

	require.NoError(t, svc.Unblacklist(entry.ID))

	_, err = visits.CheckIn(checkInInput(f))
	assert.NoError(t, err)
}

func TestUnblacklistUnknownEntry(t *testing.T) {
	f := newFixture(t)
	svc := NewNonDesirableService(f.store)

	err := svc.Unblacklist(999)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestBlacklistStatus(t *testing.T) {
	f := newFixture(t)
	svc := NewNonDesirableService(f.store)

	status, err := svc.Status(f.visitor.ID)
	require.NoError(t, err)
	assert.False(t, status.Blacklisted)
	assert.Nil(t, status.Entry)

	entry, err := svc.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "theft"}, reporterID)
	require.NoError(t, err)

	status, err = svc.Status(f.visitor.ID)
	require.NoError(t, err)
	assert.True(t, status.Blacklisted)
	require.NotNil(t, status.Entry)
	assert.Equal(t, entry.ID, status.Entry.ID)

	_, err = svc.Status(999)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}
