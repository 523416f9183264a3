package model

import (
	"time"

	"github.com/google/uuid"
)

// Client owns its pets; deleting a client removes them. TotalServices and
// TotalPurchases are cached counters updated transactionally when the
// underlying events occur, and must always match recomputation from the
// appointment history.
type Client struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address,omitempty"`
	Pets           []Pet     `json:"pets"`
	TotalServices  int       `json:"total_services"`
	TotalPurchases int       `json:"total_purchases"`
	LastVisit      time.Time `json:"last_visit,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PetByID returns the owned pet with the given id.
func (c *Client) PetByID(id uuid.UUID) (Pet, bool) {
	for _, p := range c.Pets {
		if p.ID == id {
			return p, true
		}
	}
	return Pet{}, false
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,contains=@"`
	Address string `json:"address"`
}
