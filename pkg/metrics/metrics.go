package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	AppointmentsCreated prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	RemindersEmitted    prometheus.Counter
	RemindersFailed     prometheus.Counter
	ClientsRegistered   prometheus.Counter
	PetsRegistered      *prometheus.CounterVec
	DirectorySearches   prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Total number of appointments booked",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_transitions_total",
			Help:      "Total number of successful status transitions",
		}, []string{"from", "to"}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_transitions_rejected_total",
			Help:      "Total number of rejected status transitions",
		}, []string{"from", "to"}),
		RemindersEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_emitted_total",
			Help:      "Total number of reminder events handed to the notifier",
		}),
		RemindersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder deliveries that failed",
		}),
		ClientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_registered_total",
			Help:      "Total number of clients registered",
		}),
		PetsRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pets_registered_total",
			Help:      "Total number of pets registered",
		}, []string{"type"}),
		DirectorySearches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directory_searches_total",
			Help:      "Total number of client directory searches",
		}),
	}
}
