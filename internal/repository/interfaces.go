package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository owns the appointment collection. Appointments
	// are never deleted; cancellation is a terminal status.
	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		// Mutate applies fn to the stored appointment under the store's
		// write lock, so read-check-write cycles cannot interleave. The
		// record is unchanged when fn returns an error.
		Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Appointment) error) (*model.Appointment, error)
		ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error)
		ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error)
	}

	// ClientRepository owns the client collection in registration order.
	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		// Mutate applies fn to the stored client under the store's write
		// lock; see AppointmentRepository.Mutate.
		Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Client) error) (*model.Client, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Client, error)
		Search(ctx context.Context, query string) ([]*model.Client, error)
	}
)
