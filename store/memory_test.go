package store

import (
	"testing"
	"time"

	"github.com/bako110/Sonaby/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The memory store must enforce the same uniqueness rules as the
// MySQL unique indexes, so service tests exercise the real conflict
// paths.

func TestMemoryActiveVisitUniqueness(t *testing.T) {
	s := NewMemoryStore()

	first := &models.Visit{VisitorID: 1, CheckpointID: 1, ServiceID: 1, StartAt: time.Now()}
	require.NoError(t, s.Visits().Create(first))

	second := &models.Visit{VisitorID: 1, CheckpointID: 2, ServiceID: 1, StartAt: time.Now()}
	assert.ErrorIs(t, s.Visits().Create(second), ErrDuplicate)

	// closing the first visit clears the constraint
	now := time.Now()
	first.EndAt = &now
	require.NoError(t, s.Visits().Update(first))
	assert.NoError(t, s.Visits().Create(second))
}

func TestMemoryActiveAlertUniqueness(t *testing.T) {
	s := NewMemoryStore()

	first := &models.SOSAlert{CheckpointID: 3, SentBy: 1, IsActive: true}
	require.NoError(t, s.SOSAlerts().Create(first))

	assert.ErrorIs(t, s.SOSAlerts().Create(&models.SOSAlert{CheckpointID: 3, SentBy: 2, IsActive: true}), ErrDuplicate)

	// a different checkpoint is unaffected
	assert.NoError(t, s.SOSAlerts().Create(&models.SOSAlert{CheckpointID: 4, SentBy: 2, IsActive: true}))
}

func TestMemoryBlacklistUniqueness(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.NonDesirables().Create(&models.NonDesirable{VisitorID: 9, Reason: "theft"}))
	assert.ErrorIs(t, s.NonDesirables().Create(&models.NonDesirable{VisitorID: 9, Reason: "again"}), ErrDuplicate)

	_, err := s.NonDesirables().FindByVisitor(9)
	assert.NoError(t, err)
	_, err = s.NonDesirables().FindByVisitor(10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCopySemantics(t *testing.T) {
	s := NewMemoryStore()

	v := &models.Visitor{Firstname: "Awa", Lastname: "Diallo"}
	require.NoError(t, s.Visitors().Create(v))

	got, err := s.Visitors().GetByID(v.ID)
	require.NoError(t, err)
	got.Firstname = "changed"

	again, err := s.Visitors().GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Awa", again.Firstname, "mutating a read result must not touch the store")
}
