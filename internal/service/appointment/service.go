package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
	"github.com/petgroom/admin-api/internal/service/notification"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
	"github.com/petgroom/admin-api/pkg/logger"
	"github.com/petgroom/admin-api/pkg/metrics"
	"github.com/petgroom/admin-api/pkg/validator"
)

type Service struct {
	repo       repository.AppointmentRepository
	clientRepo repository.ClientRepository
	notifSvc   notification.Service
	validator  validator.Validator
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewService(repo repository.AppointmentRepository, clientRepo repository.ClientRepository, notifSvc notification.Service, v validator.Validator, m *metrics.Metrics, l *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		clientRepo: clientRepo,
		notifSvc:   notifSvc,
		validator:  v,
		metrics:    m,
		logger:     l,
	}
}

// Create books a new appointment in status pending. The referenced client
// and pet must exist, and quick booking only takes dogs and cats.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentDetails, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apperrors.NewValidation("client_id", "must be a valid id")
	}
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, apperrors.NewValidation("pet_id", "must be a valid id")
	}

	client, err := s.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	pet, ok := client.PetByID(petID)
	if !ok {
		return nil, apperrors.NewNotFound("pet", nil)
	}
	if model.PetType(req.PetType) != pet.Type {
		return nil, apperrors.NewValidation("pet_type", fmt.Sprintf("%s is registered as %s", pet.Name, pet.Type))
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewValidation("date", "must be a date in 2006-01-02 format")
	}

	now := time.Now().UTC()
	apt := &model.Appointment{
		ID:        uuid.New(),
		ClientID:  clientID,
		PetID:     petID,
		Date:      date,
		Time:      req.Time,
		PetType:   pet.Type,
		Service:   model.ServiceType(req.Service),
		Status:    model.AppointmentStatusPending,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.AppointmentsCreated.Inc()
	return s.withDetails(ctx, apt), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetails, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, apt), nil
}

// ListByDate returns the day's appointments ordered by time ascending,
// booking order breaking ties.
func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*model.AppointmentDetails, error) {
	appointments, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	out := make([]*model.AppointmentDetails, 0, len(appointments))
	for _, apt := range appointments {
		out = append(out, s.withDetails(ctx, apt))
	}
	return out, nil
}

// Transition applies the status state machine. Disallowed moves, including
// self-transitions and anything out of a terminal state, are rejected and
// leave the appointment untouched. A move into confirmed or completed hands
// a reminder event to the notifier after the store mutation; delivery
// failure never rolls the transition back.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.AppointmentDetails, error) {
	if !target.Valid() {
		return nil, apperrors.NewValidation("status", "must be one of pending confirmed completed cancelled")
	}

	// The guard and the write run under the store lock; a racing call
	// cannot move the appointment between the check and the update.
	var from model.AppointmentStatus
	apt, err := s.repo.Mutate(ctx, id, func(a *model.Appointment) error {
		from = a.Status
		if !from.CanTransitionTo(target) {
			return apperrors.NewInvalidTransition(string(from), string(target))
		}
		a.Status = target
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if apperrors.IsInvalidTransition(err) {
			s.metrics.TransitionsRejected.WithLabelValues(string(from), string(target)).Inc()
		}
		return nil, err
	}

	if target == model.AppointmentStatusCompleted {
		s.recordVisit(ctx, apt)
	}

	s.metrics.StatusTransitions.WithLabelValues(string(from), string(target)).Inc()

	if notifies(from, target) {
		s.notify(ctx, apt)
	}

	return s.withDetails(ctx, apt), nil
}

// AppendNotes appends to the appointment's notes. Notes are the only field
// that may change after creation, and only while the appointment is in a
// non-terminal state.
func (s *Service) AppendNotes(ctx context.Context, id uuid.UUID, req *model.AppendNotesRequest) (*model.AppointmentDetails, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	apt, err := s.repo.Mutate(ctx, id, func(a *model.Appointment) error {
		if a.Status.Terminal() {
			return apperrors.NewBadRequest(fmt.Sprintf("cannot update notes of a %s appointment", a.Status), nil)
		}
		if a.Notes == "" {
			a.Notes = req.Notes
		} else {
			a.Notes = a.Notes + "\n" + req.Notes
		}
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, apt), nil
}

// notifies reports whether the transition warrants a client reminder.
func notifies(from, to model.AppointmentStatus) bool {
	switch {
	case from == model.AppointmentStatusPending && to == model.AppointmentStatusConfirmed:
		return true
	case from == model.AppointmentStatusConfirmed && to == model.AppointmentStatusCompleted:
		return true
	}
	return false
}

// recordVisit keeps the owning client's cached counters in step with the
// appointment history: completed work bumps total services and advances the
// last visit date.
func (s *Service) recordVisit(ctx context.Context, apt *model.Appointment) {
	_, err := s.clientRepo.Mutate(ctx, apt.ClientID, func(c *model.Client) error {
		c.TotalServices++
		if apt.Date.After(c.LastVisit) {
			c.LastVisit = apt.Date
		}
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		s.logger.Error(err, "failed to record completed visit",
			"client_id", apt.ClientID.String(),
			"appointment_id", apt.ID.String())
	}
}

func (s *Service) notify(ctx context.Context, apt *model.Appointment) {
	evt := notification.ReminderEvent{
		AppointmentID: apt.ID,
		NewStatus:     apt.Status,
		OccurredAt:    time.Now().UTC(),
	}
	if client, err := s.clientRepo.Get(ctx, apt.ClientID); err == nil {
		evt.ClientPhone = client.Phone
		evt.ClientEmail = client.Email
		if pet, ok := client.PetByID(apt.PetID); ok {
			evt.PetName = pet.Name
		}
	}
	s.notifSvc.Send(ctx, evt)
}

// withDetails joins the appointment with display fields derived from the
// directory, so renames never leave stale strings on the agenda.
func (s *Service) withDetails(ctx context.Context, apt *model.Appointment) *model.AppointmentDetails {
	details := &model.AppointmentDetails{
		Appointment:  *apt,
		ServiceLabel: apt.Service.Label(),
		StatusLabel:  apt.Status.Label(),
	}
	client, err := s.clientRepo.Get(ctx, apt.ClientID)
	if err != nil {
		return details
	}
	details.OwnerName = client.Name
	details.Phone = client.Phone
	if pet, ok := client.PetByID(apt.PetID); ok {
		details.PetName = pet.Name
	}
	return details
}
