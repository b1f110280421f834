package dto

import "time"

// ── Feeding requests ──

// CreateBlockRequest creates a feeding block with its initial entries.
type CreateBlockRequest struct {
	IsEliminating bool `json:"is_eliminating"`
}

// ExtendEntriesRequest materializes entries forward from a date.
type ExtendEntriesRequest struct {
	FromDate string `json:"from_date" binding:"required"` // RFC 3339 or YYYY-MM-DD
}

// UpdateEntryTimesRequest shifts the time-of-day of all entries from the
// given local time's day onward.
type UpdateEntryTimesRequest struct {
	Time string `json:"time" binding:"required"` // RFC 3339
}

// StartEliminationRequest begins the elimination phase of a block.
type StartEliminationRequest struct {
	StartDate      string   `json:"start_date"      binding:"required"` // RFC 3339 or YYYY-MM-DD
	BaselineVolume *float64 `json:"baseline_volume" binding:"required"`
}

// UpdateEntryVolumeRequest records a volume on an entry.
type UpdateEntryVolumeRequest struct {
	VolumeInOunces *float64 `json:"volume_in_ounces" binding:"required"`
}

// ── Feeding responses ──

// BlockResponse is a feeding block rendered for clients.
type BlockResponse struct {
	ID                   string     `json:"id"`
	Username             string     `json:"username"`
	Number               int        `json:"number"`
	IsEliminating        bool       `json:"is_eliminating"`
	EliminationStartDate *time.Time `json:"elimination_start_date,omitempty"`
	BaselineVolume       *float64   `json:"baseline_volume,omitempty"`
	CurrentGroup         int        `json:"current_group"`
}

// EntryResponse is a feeding entry rendered for clients.
type EntryResponse struct {
	ID             string    `json:"id"`
	BlockID        string    `json:"block_id"`
	FeedingTime    time.Time `json:"feeding_time"`
	VolumeInOunces *float64  `json:"volume_in_ounces"`
	Completed      bool      `json:"completed"`
}

// BlockWithEntriesResponse pairs a block with a week of its entries.
type BlockWithEntriesResponse struct {
	Block   BlockResponse   `json:"block"`
	Entries []EntryResponse `json:"entries"`
}
