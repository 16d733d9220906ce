package llm

import (
	"Tianji/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

var fortunePrompt string
var matchPrompt string

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	// 从prompt txt文件中读取系统提示词
	fortunePrompt = readPrompt(cfg.PromptsPath.Fortune)
	matchPrompt = readPrompt(cfg.PromptsPath.Match)

	return nil
}

// FortunePrompt 个人运势系统提示词
func FortunePrompt() string {
	return fortunePrompt
}

// MatchPrompt 配对系统提示词
func MatchPrompt() string {
	return matchPrompt
}
