package model

// User — maps to users. The username doubles as the primary key and the
// owner key on feeding blocks.
type User struct {
	Username     string `gorm:"type:varchar(255);primaryKey"       json:"username"`
	FirstName    string `gorm:"type:varchar(100);not null"         json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"         json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	BabyName     string `gorm:"type:varchar(100)"                  json:"baby_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"         json:"-"`
	BaseModel

	// Associations
	FeedingBlocks []FeedingBlock `gorm:"foreignKey:Username;references:Username" json:"feeding_blocks,omitempty"`
}

func (User) TableName() string { return "users" }
