package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
)

// Service derives read-only aggregates from the stores. It never mutates
// them, so repeated calls over an unchanged snapshot return the same result.
type Service struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
}

func NewService(appointments repository.AppointmentRepository, clients repository.ClientRepository) *Service {
	return &Service{
		appointments: appointments,
		clients:      clients,
	}
}

// DailySummary counts the day's appointments by status. The per-status
// counts sum to Total. Revenue is the list-price total of the day's
// completed services.
func (s *Service) DailySummary(ctx context.Context, date time.Time) (*model.DailySummary, error) {
	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	summary := &model.DailySummary{Date: date, Total: len(appointments)}
	for _, apt := range appointments {
		switch apt.Status {
		case model.AppointmentStatusPending:
			summary.Pending++
		case model.AppointmentStatusConfirmed:
			summary.Confirmed++
		case model.AppointmentStatusCompleted:
			summary.Completed++
			summary.Revenue += apt.Service.Price()
		case model.AppointmentStatusCancelled:
			summary.Cancelled++
		}
	}
	return summary, nil
}

// ClientSummary recomputes the client's totals from the appointment
// history. The result must match the directory's transactionally maintained
// counters: total services is the completed count, last visit the latest
// appointment date of any status (zero when there are none).
func (s *Service) ClientSummary(ctx context.Context, clientID uuid.UUID) (*model.ClientSummary, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	history, err := s.appointments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client appointments: %w", err)
	}

	summary := &model.ClientSummary{
		ClientID:       clientID,
		TotalPurchases: client.TotalPurchases,
	}
	for _, apt := range history {
		if apt.Status == model.AppointmentStatusCompleted {
			summary.TotalServices++
		}
		if apt.Date.After(summary.LastVisit) {
			summary.LastVisit = apt.Date
		}
	}
	return summary, nil
}

// Upcoming returns the day's next appointments still in play, skipping
// completed and cancelled ones. limit <= 0 means no limit.
func (s *Service) Upcoming(ctx context.Context, date time.Time, limit int) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	out := make([]*model.Appointment, 0)
	for _, apt := range appointments {
		if apt.Status.Terminal() {
			continue
		}
		out = append(out, apt)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
