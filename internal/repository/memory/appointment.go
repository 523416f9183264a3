package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
)

type appointmentRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Appointment
	nextSeq int64
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepo{
		byID: make(map[uuid.UUID]model.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if apt.ID == uuid.Nil {
		return apperrors.NewBadRequest("appointment id required", nil)
	}
	if _, exists := r.byID[apt.ID]; exists {
		return apperrors.NewBadRequest("appointment already exists", nil)
	}

	r.nextSeq++
	apt.Seq = r.nextSeq
	r.byID[apt.ID] = *apt
	return nil
}

func (r *appointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apt, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	return &apt, nil
}

func (r *appointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[apt.ID]; !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	r.byID[apt.ID] = *apt
	return nil
}

func (r *appointmentRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Appointment) error) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	// fn works on a copy; nothing is stored when it fails.
	if err := fn(&apt); err != nil {
		return nil, err
	}
	r.byID[id] = apt

	out := apt
	return &out, nil
}

func (r *appointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Truncate(24 * time.Hour)
	out := make([]*model.Appointment, 0)
	for _, apt := range r.byID {
		if apt.Date.Equal(day) {
			a := apt
			out = append(out, &a)
		}
	}

	// Time ascending, creation order breaks ties.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].Seq < out[j].Seq
	})

	return out, nil
}

func (r *appointmentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Appointment, 0)
	for _, apt := range r.byID {
		if apt.ClientID == clientID {
			a := apt
			out = append(out, &a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Seq < out[j].Seq
	})

	return out, nil
}
