package model

import "time"

// FeedingBlock — maps to feeding_blocks. A block is an ordered, per-user
// grouping of feeding entries, optionally in an eliminating (weaning)
// phase. Numbers for one user are dense: 1..N with no gaps; the unique
// index on (username, number) makes a concurrent create of the same
// number fail instead of silently duplicating it.
type FeedingBlock struct {
	ID                   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                          json:"id"`
	Username             string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_blocks_username_number,priority:1" json:"username"`
	Number               int        `gorm:"not null;uniqueIndex:idx_blocks_username_number,priority:2"              json:"number"`
	IsEliminating        bool       `gorm:"not null;default:false"                                                  json:"is_eliminating"`
	EliminationStartDate *time.Time `json:"elimination_start_date,omitempty"`
	BaselineVolume       *float64   `json:"baseline_volume,omitempty"`
	CurrentGroup         int        `gorm:"not null;default:0"                                                      json:"current_group"`
	BaseModel

	// Associations
	Entries []FeedingEntry `gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (FeedingBlock) TableName() string { return "feeding_blocks" }

// FeedingEntry — maps to feeding_entries. One scheduled or recorded
// feeding. FeedingTime is the absolute UTC instant; FeedingDay is the
// owner's local calendar day at write time, kept only so the unique
// index on (block_id, feeding_day) can enforce one entry per day.
type FeedingEntry struct {
	ID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                     json:"id"`
	BlockID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_entries_block_day,priority:1"    json:"block_id"`
	FeedingTime    time.Time `gorm:"not null;index"                                                     json:"feeding_time"`
	FeedingDay     time.Time `gorm:"type:date;not null;uniqueIndex:idx_entries_block_day,priority:2"    json:"feeding_day"`
	VolumeInOunces *float64  `json:"volume_in_ounces"`
	Completed      bool      `gorm:"not null;default:false"                                             json:"completed"`
	BaseModel
}

func (FeedingEntry) TableName() string { return "feeding_entries" }
