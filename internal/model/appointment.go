package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// transitions is the full status state machine. Absent entries, including
// self-transitions, are rejected.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
}

func (s AppointmentStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine permits moving to target.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s AppointmentStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s AppointmentStatus) Label() string {
	switch s {
	case AppointmentStatusPending:
		return "Pendente"
	case AppointmentStatusConfirmed:
		return "Confirmado"
	case AppointmentStatusCompleted:
		return "Concluído"
	case AppointmentStatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

type ServiceType string

const (
	ServiceBath         ServiceType = "bath"
	ServiceGrooming     ServiceType = "grooming"
	ServiceBathGrooming ServiceType = "bath_grooming"
	ServiceHygieneTrim  ServiceType = "hygiene"
	ServiceNailTrim     ServiceType = "nails"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceBath, ServiceGrooming, ServiceBathGrooming, ServiceHygieneTrim, ServiceNailTrim:
		return true
	}
	return false
}

func (s ServiceType) Label() string {
	switch s {
	case ServiceBath:
		return "Banho"
	case ServiceGrooming:
		return "Tosa"
	case ServiceBathGrooming:
		return "Banho + Tosa"
	case ServiceHygieneTrim:
		return "Tosa Higiênica"
	case ServiceNailTrim:
		return "Corte de Unhas"
	}
	return string(s)
}

// Price returns the list price in cents. Total over the enum so revenue
// aggregation never hits an unmapped service.
func (s ServiceType) Price() int64 {
	switch s {
	case ServiceBath:
		return 6000
	case ServiceGrooming:
		return 9000
	case ServiceBathGrooming:
		return 13000
	case ServiceHygieneTrim:
		return 7000
	case ServiceNailTrim:
		return 3500
	}
	return 0
}

// Appointment references its client and pet by id; owner and pet display
// strings are derived at read time so a renamed client never goes stale.
// Seq preserves creation order and breaks ties between equal times.
type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	ClientID  uuid.UUID         `json:"client_id"`
	PetID     uuid.UUID         `json:"pet_id"`
	Date      time.Time         `json:"date"`
	Time      string            `json:"time"`
	PetType   PetType           `json:"pet_type"`
	Service   ServiceType       `json:"service"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	Seq       int64             `json:"-"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AppointmentDetails is an appointment joined with the display fields the
// agenda renders.
type AppointmentDetails struct {
	Appointment
	PetName      string `json:"pet_name"`
	OwnerName    string `json:"owner_name"`
	Phone        string `json:"phone"`
	ServiceLabel string `json:"service_label"`
	StatusLabel  string `json:"status_label"`
}

type CreateAppointmentRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	PetID    string `json:"pet_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,hhmm"`
	// Quick booking takes dogs and cats only; "other" pets go through full
	// registration in the client directory.
	PetType string `json:"pet_type" validate:"required,oneof=dog cat"`
	Service string `json:"service" validate:"required,oneof=bath grooming bath_grooming hygiene nails"`
	Notes   string `json:"notes" validate:"max=1000"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type AppendNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=1000"`
}
