package permission

import "time"

// Permission grants UserID the right to stream the media of SkillID.
type Permission struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	SkillID   int64     `gorm:"column:skill_id;primaryKey;autoIncrement:false"`
	GrantedAt time.Time `gorm:"column:granted_at;autoCreateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}
