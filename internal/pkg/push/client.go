package push

import (
	"Tianji/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const sendBatchSize = 500

// Client 推送网关客户端，批量下发"运势已生成"类通知
type Client struct {
	httpClient *resty.Client
	enable     bool
}

type pushRequest struct {
	UserIDs []uint64 `json:"user_ids"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
}

func NewClient() *Client {
	cfg := config.Cfg.Push

	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(10 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.ApiKey)

	return &Client{
		httpClient: client,
		enable:     cfg.Enable,
	}
}

// SendBatch 分批推送，失败只记日志不影响主流程
func (s *Client) SendBatch(ctx context.Context, userIDs []uint64, title, body string) {
	if !s.enable || len(userIDs) == 0 {
		return
	}

	for start := 0; start < len(userIDs); start += sendBatchSize {
		end := start + sendBatchSize
		if end > len(userIDs) {
			end = len(userIDs)
		}

		if err := s.sendOnce(ctx, userIDs[start:end], title, body); err != nil {
			log.ErrorContext(ctx, "推送下发失败", "count", end-start, "err", err)
		}
	}
}

func (s *Client) sendOnce(ctx context.Context, userIDs []uint64, title, body string) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(&pushRequest{UserIDs: userIDs, Title: title, Body: body}).
		Post("/v1/push/batch")
	if err != nil {
		return errors.Wrap(err, "push gateway request")
	}
	if resp.IsError() {
		return errors.Errorf("push gateway status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
