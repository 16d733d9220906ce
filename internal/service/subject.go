package service

import (
	"Tianji/internal/model"
	"Tianji/internal/pkg/consts"
	"fmt"
	"strings"
	"time"
)

// UserSubjectKey 个人主体存储键
func UserSubjectKey(userID uint64) string {
	return fmt.Sprintf("user:%d", userID)
}

// CoupleSubjectKey 情侣主体存储键，小 ID 在前
// (A,B) 和 (B,A) 必须落到同一个键上，唯一索引才兜得住并发
func CoupleSubjectKey(a, b uint64) string {
	lo, hi := sortPair(a, b)
	return fmt.Sprintf("couple:%d:%d", lo, hi)
}

// GroupPairSubjectKey 群内配对主体存储键，小 ID 在前
func GroupPairSubjectKey(groupID, a, b uint64) string {
	lo, hi := sortPair(a, b)
	return fmt.Sprintf("group:%d:%d:%d", groupID, lo, hi)
}

func sortPair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// SubjectProfile 画像读模型，进 prompt 之前已经全部取好，不做任何懒加载
type SubjectProfile struct {
	Nickname  string   `json:"nickname"`
	Gender    string   `json:"gender,omitempty"`
	Birthday  string   `json:"birthday,omitempty"`
	BirthTime string   `json:"birth_time,omitempty"`
	Calendar  string   `json:"calendar,omitempty"`
	BloodType string   `json:"blood_type,omitempty"`
	MBTI      string   `json:"mbti,omitempty"`
	Job       string   `json:"job,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

var genderNames = map[uint8]string{
	consts.GenderMale:   "男",
	consts.GenderFemale: "女",
}

var calendarNames = map[int8]string{
	consts.CalendarSolar: "阳历",
	consts.CalendarLunar: "农历",
}

// ProfileFromUser 把用户画像展开成读模型
func ProfileFromUser(user *model.User) *SubjectProfile {
	detail := user.UserDetail
	profile := &SubjectProfile{
		Nickname: detail.Nickname,
		Calendar: calendarNames[detail.Calendar],
	}

	if detail.Gender != nil {
		profile.Gender = genderNames[*detail.Gender]
	}
	if detail.Birthday != nil {
		profile.Birthday = *detail.Birthday
	}
	if detail.BirthTime != nil {
		profile.BirthTime = *detail.BirthTime
	}
	if detail.BloodType != nil {
		profile.BloodType = *detail.BloodType
	}
	if detail.MBTI != nil {
		profile.MBTI = *detail.MBTI
	}
	if detail.Job != nil {
		profile.Job = *detail.Job
	}
	if detail.Interests != nil && *detail.Interests != "" {
		profile.Interests = strings.Split(*detail.Interests, ",")
	}

	return profile
}

var weekdayNames = [...]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// ChineseWeekday 配对 prompt 里要带当天星期几
func ChineseWeekday(day string) string {
	t, err := time.Parse(consts.DayLayout, day)
	if err != nil {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

// Today 当日缓存键的日期部分
func Today() string {
	return time.Now().Format(consts.DayLayout)
}
