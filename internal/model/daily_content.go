package model

import "time"

// DailyContent AI 生成内容，(subject_key, day) 唯一
// 唯一索引是并发生成的最终防线，多副本部署时没有应用层锁可依赖
type DailyContent struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	SubjectKey string `gorm:"uniqueIndex:idx_subject_day;type:varchar(64);not null"`
	Day        string `gorm:"uniqueIndex:idx_subject_day;type:char(10);not null"`
	Kind       int8   `gorm:"type:tinyint;not null;index"`
	Score      int    `gorm:"type:int;not null"`
	Content    string `gorm:"type:varchar(1024);not null"`
	CreatedAt  time.Time
}

func (DailyContent) TableName() string {
	return "daily_contents"
}
