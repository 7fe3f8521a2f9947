package services

import (
	"testing"
	"time"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointmentInput(f *fixture) AppointmentInput {
	start := time.Now().Add(24 * time.Hour)
	return AppointmentInput{
		VisitorID:     f.visitor.ID,
		ServiceID:     f.service.ID,
		PersonVisited: "Mme Toure",
		DateStart:     start,
		DateEnd:       start.Add(time.Hour),
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	appointment, err := svc.Create(appointmentInput(f))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, appointment.Status)
	assert.NotEmpty(t, appointment.QRCode)

	// every appointment gets its own QR code
	second, err := svc.Create(appointmentInput(f))
	require.NoError(t, err)
	assert.NotEqual(t, appointment.QRCode, second.QRCode)
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	input := appointmentInput(f)
	input.DateEnd = input.DateStart
	_, err := svc.Create(input)
	assert.True(t, code.IsKind(err, code.KindValidation))

	input = appointmentInput(f)
	input.VisitorID = 999
	_, err = svc.Create(input)
	assert.True(t, code.IsKind(err, code.KindNotFound))

	input = appointmentInput(f)
	input.ServiceID = 999
	_, err = svc.Create(input)
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestCreateAppointmentBlacklistedVisitor(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.NonDesirables().Create(&models.NonDesirable{
		VisitorID: f.visitor.ID,
		Reason:    "theft",
	}))
	svc := NewAppointmentService(f.store)

	_, err := svc.Create(appointmentInput(f))
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestUpdateAppointment(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	appointment, err := svc.Create(appointmentInput(f))
	require.NoError(t, err)

	input := appointmentInput(f)
	input.PersonVisited = "M. Sow"
	input.DateStart = input.DateStart.Add(2 * time.Hour)
	input.DateEnd = input.DateStart.Add(time.Hour)
	updated, err := svc.Update(appointment.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "M. Sow", updated.PersonVisited)
	assert.Equal(t, appointment.QRCode, updated.QRCode, "rescheduling keeps the QR code")

	_, err = svc.Cancel(appointment.ID)
	require.NoError(t, err)
	_, err = svc.Update(appointment.ID, input)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestAppointmentTransitions(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store)

	appointment, err := svc.Create(appointmentInput(f))
	require.NoError(t, err)

	validated, err := svc.Validate(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentValidated, validated.Status)

	_, err = svc.Validate(appointment.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))

	cancelled, err := svc.Cancel(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	_, err = svc.Cancel(appointment.ID)
	assert.True(t, code.IsKind(err, code.KindConflict))
}
