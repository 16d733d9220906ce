package consts

const (
	// SubjectKindUser 个人运势
	SubjectKindUser = int8(1)
	// SubjectKindCouple 情侣配对
	SubjectKindCouple = int8(2)
	// SubjectKindGroupPair 群内配对
	SubjectKindGroupPair = int8(3)
)

const (
	RelationshipStatusActive = int8(1)

	GenderUnknown = uint8(0)
	GenderMale    = uint8(1)
	GenderFemale  = uint8(2)

	// CalendarSolar 阳历, CalendarLunar 农历
	CalendarSolar = int8(1)
	CalendarLunar = int8(2)
)

const (
	ScoreMin = 0
	ScoreMax = 100
)

const (
	// DayLayout 存储层按日去重使用的日期格式
	DayLayout = "2006-01-02"
)
