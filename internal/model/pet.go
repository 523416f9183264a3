package model

import (
	"time"

	"github.com/google/uuid"
)

type PetType string

const (
	PetTypeDog   PetType = "dog"
	PetTypeCat   PetType = "cat"
	PetTypeOther PetType = "other"
)

// Label returns the display name for the pet type. Every variant has a
// mapping; unknown values fall through to the raw string.
func (t PetType) Label() string {
	switch t {
	case PetTypeDog:
		return "Cachorro"
	case PetTypeCat:
		return "Gato"
	case PetTypeOther:
		return "Outro"
	}
	return string(t)
}

func (t PetType) Valid() bool {
	switch t {
	case PetTypeDog, PetTypeCat, PetTypeOther:
		return true
	}
	return false
}

// Pet belongs to exactly one client and is removed only with its owner or
// through an explicit delete.
type Pet struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	Name      string    `json:"name"`
	Type      PetType   `json:"type"`
	Breed     string    `json:"breed,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePetRequest struct {
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=dog cat other"`
	Breed string `json:"breed"`
	Notes string `json:"notes" validate:"max=1000"`
}
