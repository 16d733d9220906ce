package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel 按序回放预设的响应，记录被调用次数
type fakeModel struct {
	calls     int
	responses []string
	errs      []error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	content := ""
	if idx < len(f.responses) {
		content = f.responses[idx]
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func newTestClient(m llms.Model) *Client {
	return &Client{model: m, modelName: "test-model", attemptTimeout: time.Second}
}

func TestGenerate_FirstAttemptOK(t *testing.T) {
	fake := &fakeModel{responses: []string{`{"score": 80, "content": "顺利"}`}}
	c := newTestClient(fake)

	res, err := c.Generate(context.Background(), "sys", "user", defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, 1, fake.calls)
}

func TestGenerate_EmptyThenSuccess(t *testing.T) {
	fake := &fakeModel{responses: []string{"   ", `{"score": 66, "content": "回稳"}`}}
	c := newTestClient(fake)

	res, err := c.Generate(context.Background(), "sys", "user", defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 66, res.Score)
	assert.Equal(t, 2, fake.calls)
}

func TestGenerate_ParseFailureRetried(t *testing.T) {
	fake := &fakeModel{responses: []string{"不是JSON", `{"score": 10, "content": "低开高走"}`}}
	c := newTestClient(fake)

	res, err := c.Generate(context.Background(), "sys", "user", defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, "低开高走", res.Content)
	assert.Equal(t, 2, fake.calls)
}

func TestGenerate_RateLimitFailsFast(t *testing.T) {
	fake := &fakeModel{errs: []error{errors.New("upstream returned 429 Too Many Requests")}}
	c := newTestClient(fake)

	_, err := c.Generate(context.Background(), "sys", "user", defaultOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	// 限流后不再消耗剩余的重试预算
	assert.Equal(t, 1, fake.calls)
}

func TestGenerate_ExhaustedCarriesLastCause(t *testing.T) {
	fake := &fakeModel{errs: []error{
		errors.New("connection reset"),
		errors.New("unexpected EOF"),
	}}
	c := newTestClient(fake)

	_, err := c.Generate(context.Background(), "sys", "user", defaultOpts())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.Equal(t, MaxAttempts, fake.calls)
}
