package model

import "time"

// Relationship 情侣关系，UserLowID 存小的一方，保证一对用户只有一行
type Relationship struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UserLowID  uint64 `gorm:"uniqueIndex:idx_rel_pair;not null"`
	UserHighID uint64 `gorm:"uniqueIndex:idx_rel_pair;not null"`
	Status     int8   `gorm:"type:tinyint;default:1;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Relationship) TableName() string {
	return "relationships"
}
