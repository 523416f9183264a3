package appointment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository/memory"
	"github.com/petgroom/admin-api/internal/service/notification"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
	"github.com/petgroom/admin-api/pkg/logger"
	"github.com/petgroom/admin-api/pkg/metrics"
	"github.com/petgroom/admin-api/pkg/validator"
)

// Prometheus collectors register globally; one set per test binary.
var testMetrics = metrics.NewMetrics("appointment_service_test")

var testLogger = logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification.ReminderEvent
}

func (f *fakeNotifier) Send(ctx context.Context, evt notification.ReminderEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fixture struct {
	svc      *Service
	notifier *fakeNotifier
	client   *model.Client
	pet      model.Pet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	clientRepo := memory.NewClientRepository()
	client := &model.Client{
		ID:    uuid.New(),
		Name:  "Maria Silva",
		Phone: "(11) 99999-1234",
		Email: "maria.silva@email.com",
	}
	pet := model.Pet{ID: uuid.New(), ClientID: client.ID, Name: "Thor", Type: model.PetTypeDog, Breed: "Golden Retriever"}
	client.Pets = []model.Pet{pet}
	require.NoError(t, clientRepo.Create(ctx, client))

	notifier := &fakeNotifier{}
	svc := NewService(memory.NewAppointmentRepository(), clientRepo, notifier, validator.New(), testMetrics, testLogger)

	return &fixture{svc: svc, notifier: notifier, client: client, pet: pet}
}

func (f *fixture) book(t *testing.T, hhmm string) *model.AppointmentDetails {
	t.Helper()
	apt, err := f.svc.Create(context.Background(), &model.CreateAppointmentRequest{
		ClientID: f.client.ID.String(),
		PetID:    f.pet.ID.String(),
		Date:     "2026-01-15",
		Time:     hhmm,
		PetType:  "dog",
		Service:  "bath_grooming",
	})
	require.NoError(t, err)
	return apt
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, "09:00")

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, "Thor", apt.PetName)
	assert.Equal(t, "Maria Silva", apt.OwnerName)
	assert.Equal(t, "(11) 99999-1234", apt.Phone)
	assert.Equal(t, "Banho + Tosa", apt.ServiceLabel)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   model.CreateAppointmentRequest
		field string
	}{
		{
			name: "missing client",
			req: model.CreateAppointmentRequest{
				PetID: f.pet.ID.String(), Date: "2026-01-15", Time: "09:00", PetType: "dog", Service: "bath",
			},
			field: "client_id",
		},
		{
			name: "bad time",
			req: model.CreateAppointmentRequest{
				ClientID: f.client.ID.String(), PetID: f.pet.ID.String(),
				Date: "2026-01-15", Time: "25:00", PetType: "dog", Service: "bath",
			},
			field: "time",
		},
		{
			name: "other pets not bookable",
			req: model.CreateAppointmentRequest{
				ClientID: f.client.ID.String(), PetID: f.pet.ID.String(),
				Date: "2026-01-15", Time: "09:00", PetType: "other", Service: "bath",
			},
			field: "pet_type",
		},
		{
			name: "unknown service",
			req: model.CreateAppointmentRequest{
				ClientID: f.client.ID.String(), PetID: f.pet.ID.String(),
				Date: "2026-01-15", Time: "09:00", PetType: "dog", Service: "massage",
			},
			field: "service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, &tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))

			appErr := err.(*apperrors.AppError)
			assert.Equal(t, tt.field, appErr.Field)

			// Failed creates leave no trace on the agenda.
			day, _ := time.Parse(model.DateLayout, "2026-01-15")
			listed, lerr := f.svc.ListByDate(ctx, day)
			require.NoError(t, lerr)
			assert.Empty(t, listed)
		})
	}
}

func TestCreateUnknownClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &model.CreateAppointmentRequest{
		ClientID: uuid.New().String(),
		PetID:    f.pet.ID.String(),
		Date:     "2026-01-15",
		Time:     "09:00",
		PetType:  "dog",
		Service:  "bath",
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateRejectsPetTypeMismatch(t *testing.T) {
	f := newFixture(t)

	// Thor is registered as a dog.
	_, err := f.svc.Create(context.Background(), &model.CreateAppointmentRequest{
		ClientID: f.client.ID.String(),
		PetID:    f.pet.ID.String(),
		Date:     "2026-01-15",
		Time:     "09:00",
		PetType:  "cat",
		Service:  "bath",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTransitionTable(t *testing.T) {
	statuses := []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
	}

	// Paths that drive a fresh appointment into each starting state.
	paths := map[model.AppointmentStatus][]model.AppointmentStatus{
		model.AppointmentStatusPending:   {},
		model.AppointmentStatusConfirmed: {model.AppointmentStatusConfirmed},
		model.AppointmentStatusCompleted: {model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted},
		model.AppointmentStatusCancelled: {model.AppointmentStatusCancelled},
	}

	ctx := context.Background()
	for _, from := range statuses {
		for _, to := range statuses {
			f := newFixture(t)
			apt := f.book(t, "09:00")
			for _, step := range paths[from] {
				_, err := f.svc.Transition(ctx, apt.ID, step)
				require.NoError(t, err)
			}

			got, err := f.svc.Transition(ctx, apt.ID, to)
			if from.CanTransitionTo(to) {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got.Status)
			} else {
				require.Error(t, err, "%s -> %s", from, to)
				assert.True(t, apperrors.IsInvalidTransition(err))

				appErr := err.(*apperrors.AppError)
				assert.Equal(t, string(from), appErr.Current)
				assert.Equal(t, string(to), appErr.Requested)

				// Rejected transitions leave the appointment untouched.
				after, gerr := f.svc.Get(ctx, apt.ID)
				require.NoError(t, gerr)
				assert.Equal(t, from, after.Status)
			}
		}
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), uuid.New(), model.AppointmentStatusConfirmed)
	assert.True(t, apperrors.IsNotFound(err))
}

// Booking scenario: Thor, Maria Silva, 09:00, bath+grooming.
func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt := f.book(t, "09:00")
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)

	confirmed, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusPending)
	assert.True(t, apperrors.IsInvalidTransition(err))

	completed, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCancelled)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestRemindersEmittedOnConfirmAndComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, 1, f.notifier.count())

	evt := f.notifier.events[0]
	assert.Equal(t, apt.ID, evt.AppointmentID)
	assert.Equal(t, model.AppointmentStatusConfirmed, evt.NewStatus)
	assert.Equal(t, "(11) 99999-1234", evt.ClientPhone)
	assert.Equal(t, "Thor", evt.PetName)

	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, f.notifier.count())
}

func TestCancellationEmitsNoReminder(t *testing.T) {
	f := newFixture(t)
	apt := f.book(t, "09:00")

	_, err := f.svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 0, f.notifier.count())
}

func TestCompletionUpdatesClientCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)

	updated, err := f.svc.clientRepo.Get(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalServices)
	assert.Equal(t, "2026-01-15", updated.LastVisit.Format(model.DateLayout))
}

func TestAppendNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	first, err := f.svc.AppendNotes(ctx, apt.ID, &model.AppendNotesRequest{Notes: "Pet nervoso"})
	require.NoError(t, err)
	assert.Equal(t, "Pet nervoso", first.Notes)

	second, err := f.svc.AppendNotes(ctx, apt.ID, &model.AppendNotesRequest{Notes: "precisa de cuidado extra"})
	require.NoError(t, err)
	assert.Equal(t, "Pet nervoso\nprecisa de cuidado extra", second.Notes)
}

func TestAppendNotesRejectedInTerminalState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)

	_, err = f.svc.AppendNotes(ctx, apt.ID, &model.AppendNotesRequest{Notes: "too late"})
	require.Error(t, err)
}

func TestAppendNotesConcurrentKeepsEveryLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.AppendNotes(ctx, apt.ID, &model.AppendNotesRequest{
				Notes: fmt.Sprintf("observação %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := f.svc.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(got.Notes, "\n"), n)
}

func TestTransitionConcurrentTerminalStaysTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, "09:00")

	_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := f.svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed)
			assert.True(t, apperrors.IsInvalidTransition(err))
		}()
	}
	wg.Wait()

	got, err := f.svc.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
}

func TestCompletionLogsWhenClientGone(t *testing.T) {
	ctx := context.Background()

	clientRepo := memory.NewClientRepository()
	client := &model.Client{ID: uuid.New(), Name: "Maria Silva", Phone: "(11) 99999-1234"}
	pet := model.Pet{ID: uuid.New(), ClientID: client.ID, Name: "Thor", Type: model.PetTypeDog}
	client.Pets = []model.Pet{pet}
	require.NoError(t, clientRepo.Create(ctx, client))

	var logged bytes.Buffer
	svc := NewService(memory.NewAppointmentRepository(), clientRepo, &fakeNotifier{}, validator.New(), testMetrics,
		logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: &logged}))

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		ClientID: client.ID.String(),
		PetID:    pet.ID.String(),
		Date:     "2026-01-15",
		Time:     "09:00",
		PetType:  "dog",
		Service:  "bath",
	})
	require.NoError(t, err)
	_, err = svc.Transition(ctx, apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)

	require.NoError(t, clientRepo.Delete(ctx, client.ID))

	// The transition still succeeds; the failed counter bump is logged.
	got, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
	assert.Contains(t, logged.String(), "failed to record completed visit")
}

func TestListByDateOrdersByTime(t *testing.T) {
	f := newFixture(t)

	f.book(t, "14:00")
	f.book(t, "09:00")
	f.book(t, "10:30")

	day, _ := time.Parse(model.DateLayout, "2026-01-15")
	listed, err := f.svc.ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "09:00", listed[0].Time)
	assert.Equal(t, "10:30", listed[1].Time)
	assert.Equal(t, "14:00", listed[2].Time)
}
