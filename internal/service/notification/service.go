package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/email"
	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/pkg/logger"
	"github.com/petgroom/admin-api/pkg/messaging"
	"github.com/petgroom/admin-api/pkg/metrics"
)

const reminderChannel = "reminders"

// ReminderEvent is emitted after a pending→confirmed or confirmed→completed
// transition. External channels (WhatsApp integration, SMS) consume it from
// the broker; delivery never rolls back the transition that produced it.
type ReminderEvent struct {
	AppointmentID uuid.UUID               `json:"appointment_id"`
	NewStatus     model.AppointmentStatus `json:"new_status"`
	ClientPhone   string                  `json:"client_phone"`
	ClientEmail   string                  `json:"client_email,omitempty"`
	PetName       string                  `json:"pet_name"`
	OccurredAt    time.Time               `json:"occurred_at"`
}

type Service interface {
	Send(ctx context.Context, evt ReminderEvent)
}

type service struct {
	broker   messaging.Broker
	emailSvc email.Service
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewService wires the reminder emitter. broker and emailSvc may be nil when
// the corresponding channel is disabled.
func NewService(broker messaging.Broker, emailSvc email.Service, m *metrics.Metrics, l *logger.Logger) Service {
	return &service{
		broker:   broker,
		emailSvc: emailSvc,
		metrics:  m,
		logger:   l,
	}
}

func (s *service) Send(ctx context.Context, evt ReminderEvent) {
	s.metrics.RemindersEmitted.Inc()

	if s.broker != nil {
		if err := s.broker.Publish(ctx, reminderChannel, evt); err != nil {
			s.metrics.RemindersFailed.Inc()
			s.logger.Error(err, "failed to publish reminder event",
				"appointment_id", evt.AppointmentID.String())
		}
	}

	if s.emailSvc != nil && evt.ClientEmail != "" {
		subject, body := reminderMessage(evt)
		if err := s.emailSvc.SendReminder(ctx, evt.ClientEmail, subject, body); err != nil {
			s.metrics.RemindersFailed.Inc()
			s.logger.Error(err, "failed to send reminder email",
				"appointment_id", evt.AppointmentID.String())
		}
	}
}

func reminderMessage(evt ReminderEvent) (string, string) {
	switch evt.NewStatus {
	case model.AppointmentStatusConfirmed:
		return "Agendamento confirmado",
			fmt.Sprintf("O agendamento de %s foi confirmado. Até breve!", evt.PetName)
	case model.AppointmentStatusCompleted:
		return "Serviço concluído",
			fmt.Sprintf("O serviço de %s foi concluído. Obrigado pela preferência!", evt.PetName)
	default:
		return "Atualização de agendamento",
			fmt.Sprintf("O agendamento de %s mudou para %s.", evt.PetName, evt.NewStatus.Label())
	}
}
