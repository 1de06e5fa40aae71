package want

import "time"

type Want struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Want) TableName() string {
	return "wants"
}
