package skill

import "time"

type Skill struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Video       string    `gorm:"column:video;not null"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

func (Skill) TableName() string {
	return "skills"
}

// Listing is a skill row joined with the owner columns shown in catalog views.
type Listing struct {
	Skill           `gorm:"embedded"`
	OwnerName       string `gorm:"column:owner_name"`
	OwnerProfession string `gorm:"column:owner_profession"`
}
