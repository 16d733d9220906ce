package mongo

import "time"

const (
	GenerationOutcomeOK        = "ok"
	GenerationOutcomeFailed    = "failed"
	GenerationOutcomeRateLimit = "rate_limited"
)

// GenerationLog 生成审计日志，只进不改，排查"为什么今天没出运势"用
type GenerationLog struct {
	SubjectKey  string    `bson:"subject_key"`
	Day         string    `bson:"day"`
	Kind        int8      `bson:"kind"`
	UserPrompt  string    `bson:"user_prompt"`
	RawResponse string    `bson:"raw_response,omitempty"`
	Score       int       `bson:"score,omitempty"`
	Outcome     string    `bson:"outcome"`
	ErrMessage  string    `bson:"err_message,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}
