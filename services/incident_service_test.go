package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reporterID uint = 42

func incidentInput(f *fixture) IncidentInput {
	return IncidentInput{
		VisitorID: f.visitor.ID,
		ServiceID: f.service.ID,
		Reason:    "aggressive behaviour",
	}
}

func TestReportIncident(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, report.Incident.Severity)
	assert.Equal(t, reporterID, report.Incident.ReportedBy)
	assert.Equal(t, int64(1), report.IncidentCount)
	assert.False(t, report.AutoBlacklisted)
}

func TestReportIncidentValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	input := incidentInput(f)
	input.Reason = "   "
	_, err := svc.Report(input, reporterID)
	assert.True(t, code.IsKind(err, code.KindValidation))

	input = incidentInput(f)
	input.Severity = "catastrophic"
	_, err = svc.Report(input, reporterID)
	assert.True(t, code.IsKind(err, code.KindValidation))

	input = incidentInput(f)
	input.VisitorID = 999
	_, err = svc.Report(input, reporterID)
	assert.True(t, code.IsKind(err, code.KindNotFound))

	input = incidentInput(f)
	input.ServiceID = 999
	_, err = svc.Report(input, reporterID)
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestThirdIncidentBlacklistsAutomatically(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	for i := 0; i < 2; i++ {
		report, err := svc.Report(incidentInput(f), reporterID)
		require.NoError(t, err)
		assert.False(t, report.AutoBlacklisted)
	}

	_, err := f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	require.True(t, errors.Is(err, store.ErrNotFound))

	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	assert.True(t, report.AutoBlacklisted)
	assert.Equal(t, int64(3), report.IncidentCount)

	entry, err := f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	require.NoError(t, err)
	assert.Contains(t, entry.Reason, fmt.Sprintf("%d incidents", 3))
	assert.Equal(t, reporterID, entry.ReportedBy)
}

func TestFourthIncidentKeepsOriginalEntry(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	for i := 0; i < 3; i++ {
		_, err := svc.Report(incidentInput(f), reporterID)
		require.NoError(t, err)
	}
	original, err := f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	require.NoError(t, err)

	// the visitor is already on the list; the report still succeeds
	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	assert.False(t, report.AutoBlacklisted)
	assert.Equal(t, int64(4), report.IncidentCount)

	after, err := f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, after.ID)
	assert.Equal(t, original.Reason, after.Reason)
}

type faultyBlacklistStore struct {
	store.Store
}

func (s faultyBlacklistStore) NonDesirables() store.NonDesirableStore {
	return faultyNonDesirableStore{s.Store.NonDesirables()}
}

type faultyNonDesirableStore struct {
	store.NonDesirableStore
}

func (faultyNonDesirableStore) Create(*models.NonDesirable) error {
	return errors.New("write timeout")
}

func TestAutoBlacklistFailureDoesNotFailReport(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(faultyBlacklistStore{f.store}, testConfig())

	for i := 0; i < 2; i++ {
		_, err := svc.Report(incidentInput(f), reporterID)
		require.NoError(t, err)
	}

	// the entry write fails, the incident report does not
	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	assert.False(t, report.AutoBlacklisted)
	assert.Equal(t, int64(3), report.IncidentCount)

	_, err = f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIncidentReportOnManuallyBlacklistedVisitor(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())
	blacklist := NewNonDesirableService(f.store)

	_, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	_, err = svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)

	_, err = blacklist.Blacklist(BlacklistInput{VisitorID: f.visitor.ID, Reason: "manual"}, reporterID)
	require.NoError(t, err)

	// third report hits the threshold but the entry already exists
	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)
	assert.False(t, report.AutoBlacklisted)

	entry, err := f.store.NonDesirables().FindByVisitor(f.visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, "manual", entry.Reason)
}

func TestResolveIncident(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	report, err := svc.Report(incidentInput(f), reporterID)
	require.NoError(t, err)

	resolved, err := svc.Resolve(report.Incident.ID, "escorted out")
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "escorted out", resolved.ResolutionNote)

	_, err = svc.Resolve(report.Incident.ID, "again")
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestCountByVisitor(t *testing.T) {
	f := newFixture(t)
	svc := NewIncidentService(f.store, testConfig())

	count, err := svc.CountByVisitor(f.visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.CountByVisitor(999)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}
