package services

import (
	"errors"
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardID uint = 7

func TestTriggerSOS(t *testing.T) {
	f := newFixture(t)
	notifier := &stubNotifier{}
	svc := NewSOSService(f.store, notifier, testConfig())

	result, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID, Message: "intrusion"}, guardID)
	require.NoError(t, err)
	assert.True(t, result.Alert.IsActive)
	assert.Equal(t, guardID, result.Alert.SentBy)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, notifier.calls)
}

func TestTriggerSOSUnknownCheckpoint(t *testing.T) {
	f := newFixture(t)
	svc := NewSOSService(f.store, &stubNotifier{}, testConfig())

	_, err := svc.Trigger(SOSInput{CheckpointID: 999}, guardID)
	assert.True(t, code.IsKind(err, code.KindNotFound))
}

func TestTriggerSOSWhileActive(t *testing.T) {
	f := newFixture(t)
	notifier := &stubNotifier{}
	svc := NewSOSService(f.store, notifier, testConfig())

	_, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)

	_, err = svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	assert.True(t, code.IsKind(err, code.KindConflict))
	assert.Equal(t, 1, notifier.calls, "rejected trigger must not dispatch")
}

func TestTriggerSOSDispatchFailure(t *testing.T) {
	f := newFixture(t)
	notifier := &stubNotifier{err: errors.New("broker unreachable")}
	svc := NewSOSService(f.store, notifier, testConfig())

	result, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err, "a failed dispatch must not fail the trigger")
	assert.False(t, result.Notified)

	// the alert was stored despite the dispatch failure
	stored, err := svc.GetByID(result.Alert.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestResolveSOSReArmsCheckpoint(t *testing.T) {
	f := newFixture(t)
	svc := NewSOSService(f.store, &stubNotifier{}, testConfig())

	result, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)

	resolved, err := svc.Resolve(result.Alert.ID, guardID)
	require.NoError(t, err)
	assert.False(t, resolved.IsActive)
	assert.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, guardID, *resolved.ResolvedBy)

	// the checkpoint accepts a new alert now
	_, err = svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)
}

func TestResolveSOSTwice(t *testing.T) {
	f := newFixture(t)
	svc := NewSOSService(f.store, &stubNotifier{}, testConfig())

	result, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)
	_, err = svc.Resolve(result.Alert.ID, guardID)
	require.NoError(t, err)

	_, err = svc.Resolve(result.Alert.ID, guardID)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestSOSStats(t *testing.T) {
	f := newFixture(t)
	svc := NewSOSService(f.store, &stubNotifier{}, testConfig())

	result, err := svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)
	_, err = svc.Resolve(result.Alert.ID, guardID)
	require.NoError(t, err)
	_, err = svc.Trigger(SOSInput{CheckpointID: f.checkpoint.ID}, guardID)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAlerts)
	assert.Equal(t, int64(1), stats.ActiveAlerts)
	assert.Equal(t, int64(1), stats.ResolvedAlerts)
}
