package llm

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// FortuneResponse 解析后的结构化生成结果，Raw 保留原始返回供审计
type FortuneResponse struct {
	Score   int
	Content string
	Raw     string
}

// ParseOptions 解析约束
type ParseOptions struct {
	MinScore      int
	MaxScore      int
	MaxContentLen int
	// DefaultScore score 非数值时的兜底值，nil 表示直接判失败
	DefaultScore *int
}

type rawFortune struct {
	Score   any    `json:"score"`
	Content string `json:"content"`
}

// ParseFortune 从模型返回文本中提取 {score, content}
// 模型偶尔会带 markdown 围栏或前后废话，先裁剪首尾花括号之间的片段
func ParseFortune(s string, opts ParseOptions) (*FortuneResponse, error) {
	cleaned := Sanitize(s)

	var temp rawFortune
	if err := json.Unmarshal([]byte(cleaned), &temp); err != nil {
		return nil, err
	}

	score, err := resolveScore(temp.Score, opts)
	if err != nil {
		return nil, err
	}

	if temp.Content == "" {
		// content 没有任何可用的兜底，缺失就是硬失败
		return nil, errors.New("content 缺失")
	}

	content := temp.Content
	if opts.MaxContentLen > 0 {
		runes := []rune(content)
		if len(runes) > opts.MaxContentLen {
			content = string(runes[:opts.MaxContentLen])
		}
	}

	return &FortuneResponse{
		Score:   score,
		Content: content,
		Raw:     s,
	}, nil
}

// Sanitize 裁剪首个 { 到最后一个 } 之间的片段
// 找不到合法括号对时原样返回裁剪后的文本，让上层解码显式失败
func Sanitize(s string) string {
	trimmed := strings.TrimSpace(s)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return trimmed
	}
	return trimmed[start : end+1]
}

// resolveScore 任意数值类型截断为整数后夹到区间内
func resolveScore(v any, opts ParseOptions) (int, error) {
	var score int
	switch n := v.(type) {
	case float64:
		score = int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.New("score 非数值")
		}
		score = int(f)
	default:
		if opts.DefaultScore == nil {
			return 0, errors.New("score 非数值")
		}
		score = *opts.DefaultScore
	}

	if score < opts.MinScore {
		score = opts.MinScore
	}
	if score > opts.MaxScore {
		score = opts.MaxScore
	}
	return score, nil
}
