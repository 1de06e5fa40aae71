package request

import "time"

type Request struct {
	ID        int64     `gorm:"primaryKey"`
	FromID    int64     `gorm:"column:from_id;not null;index:idx_requests_pending_pair,unique,where:status = 'pending'"`
	ToID      int64     `gorm:"column:to_id;not null;index"`
	SkillID   int64     `gorm:"column:skill_id;not null;index:idx_requests_pending_pair,unique,where:status = 'pending'"`
	Status    string    `gorm:"column:status;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string {
	return "requests"
}
