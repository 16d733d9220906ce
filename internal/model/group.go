package model

import "time"

// Group 小圈子
type Group struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(50);not null"`
	OwnerID   uint64 `gorm:"not null;index"`
	IsDelete  bool   `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Group) TableName() string {
	return "groups"
}

type GroupMember struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement"`
	GroupID  uint64    `gorm:"uniqueIndex:idx_group_user;not null"`
	UserID   uint64    `gorm:"uniqueIndex:idx_group_user;index;not null"`
	JoinedAt time.Time
}

func (GroupMember) TableName() string {
	return "group_members"
}
