package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOpts() ParseOptions {
	return ParseOptions{MinScore: 0, MaxScore: 100, MaxContentLen: 300}
}

func TestParseFortune_CodeFence(t *testing.T) {
	raw := "```json\n{\"score\":75,\"content\":\"ok\"}\n```"

	res, err := ParseFortune(raw, defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 75, res.Score)
	assert.Equal(t, "ok", res.Content)
}

func TestParseFortune_SurroundingProse(t *testing.T) {
	raw := "好的，以下是结果：{\"score\": 42, \"content\": \"今天宜静不宜动\"} 希望你喜欢"

	res, err := ParseFortune(raw, defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 42, res.Score)
	assert.Equal(t, "今天宜静不宜动", res.Content)
}

func TestParseFortune_NoBraces(t *testing.T) {
	_, err := ParseFortune("  今天心情不错  ", defaultOpts())
	assert.Error(t, err)
}

func TestSanitize_NoBracesReturnsTrimmed(t *testing.T) {
	assert.Equal(t, "今天心情不错", Sanitize("  今天心情不错  "))
}

func TestParseFortune_ScoreClamp(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"score": 150, "content": "x"}`, 100},
		{`{"score": -5, "content": "x"}`, 0},
		{`{"score": 0, "content": "x"}`, 0},
		{`{"score": 100, "content": "x"}`, 100},
		{`{"score": 88.9, "content": "x"}`, 88},
	}

	for _, c := range cases {
		res, err := ParseFortune(c.raw, defaultOpts())
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, res.Score, c.raw)
	}
}

func TestParseFortune_NonNumericScore(t *testing.T) {
	raw := `{"score": "很高", "content": "x"}`

	_, err := ParseFortune(raw, defaultOpts())
	assert.Error(t, err)

	def := 60
	opts := defaultOpts()
	opts.DefaultScore = &def
	res, err := ParseFortune(raw, opts)
	require.NoError(t, err)
	assert.Equal(t, 60, res.Score)
}

func TestParseFortune_ContentTruncation(t *testing.T) {
	opts := defaultOpts()
	opts.MaxContentLen = 5

	res, err := ParseFortune(`{"score": 50, "content": "一二三四五六七"}`, opts)
	require.NoError(t, err)
	assert.Equal(t, "一二三四五", res.Content)

	res, err = ParseFortune(`{"score": 50, "content": "一二三"}`, opts)
	require.NoError(t, err)
	assert.Equal(t, "一二三", res.Content)
}

func TestParseFortune_MissingContent(t *testing.T) {
	_, err := ParseFortune(`{"score": 50}`, defaultOpts())
	assert.Error(t, err)
}
