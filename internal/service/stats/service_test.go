package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
	"github.com/petgroom/admin-api/internal/repository/memory"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, value)
	require.NoError(t, err)
	return d
}

func seedAppointment(t *testing.T, repo repository.AppointmentRepository, clientID uuid.UUID, date, hhmm string, svc model.ServiceType, status model.AppointmentStatus) *model.Appointment {
	t.Helper()
	apt := &model.Appointment{
		ID:       uuid.New(),
		ClientID: clientID,
		PetID:    uuid.New(),
		Date:     day(t, date),
		Time:     hhmm,
		PetType:  model.PetTypeDog,
		Service:  svc,
		Status:   status,
	}
	require.NoError(t, repo.Create(context.Background(), apt))
	return apt
}

func TestDailySummaryCountsByStatus(t *testing.T) {
	appointments := memory.NewAppointmentRepository()
	clients := memory.NewClientRepository()
	svc := NewService(appointments, clients)
	ctx := context.Background()
	clientID := uuid.New()

	seedAppointment(t, appointments, clientID, "2026-01-15", "09:00", model.ServiceBathGrooming, model.AppointmentStatusCompleted)
	seedAppointment(t, appointments, clientID, "2026-01-15", "10:30", model.ServiceBath, model.AppointmentStatusConfirmed)
	seedAppointment(t, appointments, clientID, "2026-01-15", "11:00", model.ServiceNailTrim, model.AppointmentStatusPending)
	seedAppointment(t, appointments, clientID, "2026-01-15", "14:00", model.ServiceHygieneTrim, model.AppointmentStatusCancelled)
	seedAppointment(t, appointments, clientID, "2026-01-15", "15:30", model.ServiceGrooming, model.AppointmentStatusCompleted)
	// Other days never leak into the summary.
	seedAppointment(t, appointments, clientID, "2026-01-16", "09:00", model.ServiceBath, model.AppointmentStatusPending)

	summary, err := svc.DailySummary(ctx, day(t, "2026-01-15"))
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Confirmed)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.Cancelled)
	assert.Equal(t, summary.Total, summary.Pending+summary.Confirmed+summary.Completed+summary.Cancelled)

	// Revenue counts completed services only, at list price.
	want := model.ServiceBathGrooming.Price() + model.ServiceGrooming.Price()
	assert.Equal(t, want, summary.Revenue)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	svc := NewService(memory.NewAppointmentRepository(), memory.NewClientRepository())

	summary, err := svc.DailySummary(context.Background(), day(t, "2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Zero(t, summary.Revenue)
}

func TestClientSummaryRecomputesFromHistory(t *testing.T) {
	appointments := memory.NewAppointmentRepository()
	clients := memory.NewClientRepository()
	svc := NewService(appointments, clients)
	ctx := context.Background()

	client := &model.Client{
		ID:             uuid.New(),
		Name:           "Pedro Lima",
		Phone:          "(11) 96666-3456",
		TotalServices:  2,
		TotalPurchases: 3,
		LastVisit:      day(t, "2026-01-10"),
	}
	require.NoError(t, clients.Create(ctx, client))

	seedAppointment(t, appointments, client.ID, "2026-01-08", "09:00", model.ServiceBath, model.AppointmentStatusCompleted)
	seedAppointment(t, appointments, client.ID, "2026-01-10", "10:30", model.ServiceGrooming, model.AppointmentStatusCompleted)
	// Cancelled and pending work still moves the last visit forward.
	seedAppointment(t, appointments, client.ID, "2026-01-20", "11:00", model.ServiceBath, model.AppointmentStatusPending)

	summary, err := svc.ClientSummary(ctx, client.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalServices)
	assert.Equal(t, 3, summary.TotalPurchases)
	assert.Equal(t, day(t, "2026-01-20"), summary.LastVisit)

	// The recomputed service count matches the directory's cached counter.
	assert.Equal(t, client.TotalServices, summary.TotalServices)
}

func TestClientSummaryNoHistory(t *testing.T) {
	appointments := memory.NewAppointmentRepository()
	clients := memory.NewClientRepository()
	svc := NewService(appointments, clients)
	ctx := context.Background()

	client := &model.Client{ID: uuid.New(), Name: "Ana Costa", Phone: "(11) 97777-9012"}
	require.NoError(t, clients.Create(ctx, client))

	summary, err := svc.ClientSummary(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalServices)
	assert.True(t, summary.LastVisit.IsZero())
}

func TestClientSummaryUnknownClient(t *testing.T) {
	svc := NewService(memory.NewAppointmentRepository(), memory.NewClientRepository())

	_, err := svc.ClientSummary(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpcomingSkipsTerminalStates(t *testing.T) {
	appointments := memory.NewAppointmentRepository()
	svc := NewService(appointments, memory.NewClientRepository())
	ctx := context.Background()
	clientID := uuid.New()

	seedAppointment(t, appointments, clientID, "2026-01-15", "09:00", model.ServiceBath, model.AppointmentStatusCompleted)
	pending := seedAppointment(t, appointments, clientID, "2026-01-15", "10:30", model.ServiceBath, model.AppointmentStatusPending)
	seedAppointment(t, appointments, clientID, "2026-01-15", "11:00", model.ServiceBath, model.AppointmentStatusCancelled)
	confirmed := seedAppointment(t, appointments, clientID, "2026-01-15", "14:00", model.ServiceBath, model.AppointmentStatusConfirmed)

	upcoming, err := svc.Upcoming(ctx, day(t, "2026-01-15"), 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, pending.ID, upcoming[0].ID)
	assert.Equal(t, confirmed.ID, upcoming[1].ID)

	limited, err := svc.Upcoming(ctx, day(t, "2026-01-15"), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, pending.ID, limited[0].ID)
}
