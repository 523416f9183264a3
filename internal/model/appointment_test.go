package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitionTable(t *testing.T) {
	all := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}

	allowed := map[AppointmentStatus]map[AppointmentStatus]bool{
		AppointmentStatusPending:   {AppointmentStatusConfirmed: true, AppointmentStatusCancelled: true},
		AppointmentStatusConfirmed: {AppointmentStatusCompleted: true, AppointmentStatusCancelled: true},
		AppointmentStatusCompleted: {},
		AppointmentStatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.False(t, AppointmentStatus("archived").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestServiceTypeMappingsAreTotal(t *testing.T) {
	services := []ServiceType{
		ServiceBath,
		ServiceGrooming,
		ServiceBathGrooming,
		ServiceHygieneTrim,
		ServiceNailTrim,
	}

	for _, s := range services {
		assert.True(t, s.Valid(), "%s", s)
		assert.NotEqual(t, string(s), s.Label(), "%s has no display label", s)
		assert.Greater(t, s.Price(), int64(0), "%s has no list price", s)
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Pendente", AppointmentStatusPending.Label())
	assert.Equal(t, "Confirmado", AppointmentStatusConfirmed.Label())
	assert.Equal(t, "Concluído", AppointmentStatusCompleted.Label())
	assert.Equal(t, "Cancelado", AppointmentStatusCancelled.Label())
}

func TestPetTypeLabels(t *testing.T) {
	for _, pt := range []PetType{PetTypeDog, PetTypeCat, PetTypeOther} {
		assert.True(t, pt.Valid())
		assert.NotEqual(t, string(pt), pt.Label())
	}
	assert.False(t, PetType("bird").Valid())
}
