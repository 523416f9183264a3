package model

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary counts one day's appointments by status. The per-status
// counts always sum to Total. Revenue is the list-price sum over the day's
// completed services, in cents.
type DailySummary struct {
	Date      time.Time `json:"date"`
	Total     int       `json:"total"`
	Pending   int       `json:"pending"`
	Confirmed int       `json:"confirmed"`
	Completed int       `json:"completed"`
	Cancelled int       `json:"cancelled"`
	Revenue   int64     `json:"revenue"`
}

// ClientSummary is derived from the appointment history: TotalServices is
// the completed count, LastVisit the latest appointment date of any status
// (zero when the client has none). TotalPurchases comes from the directory's
// purchase counter.
type ClientSummary struct {
	ClientID       uuid.UUID `json:"client_id"`
	TotalServices  int       `json:"total_services"`
	TotalPurchases int       `json:"total_purchases"`
	LastVisit      time.Time `json:"last_visit,omitempty"`
}
