package model

// UserDetail 画像信息，运势 prompt 的全部输入都来自这里
type UserDetail struct {
	UserID    uint64  `gorm:"primaryKey"`
	Nickname  string  `gorm:"type:varchar(50);not null"`
	Gender    *uint8  `gorm:"type:tinyint;default:0"`
	Birthday  *string `gorm:"type:date"`
	BirthTime *string `gorm:"type:varchar(5)"` // HH:mm，时辰推算用
	Calendar  int8    `gorm:"type:tinyint;default:1"`
	BloodType *string `gorm:"type:varchar(2)"`
	MBTI      *string `gorm:"type:varchar(4);column:mbti"`
	Job       *string `gorm:"type:varchar(50)"`
	Interests *string `gorm:"type:varchar(255)"` // 逗号分隔
}

func (UserDetail) TableName() string {
	return "user_detail"
}
