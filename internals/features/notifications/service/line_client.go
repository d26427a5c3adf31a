package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrLineNotConfigured: the channel access token is missing. Surfaced as a
// configuration error, not an external-service failure.
var ErrLineNotConfigured = errors.New("LINE channel access token is not configured")

const linePushEndpoint = "https://api.line.me/v2/bot/message/push"

// LineSender pushes one text message to a LINE user. Satisfied by
// LineClient; tests substitute a fake.
type LineSender interface {
	PushText(ctx context.Context, to string, text string) error
}

// LineClient is thin glue over the LINE Messaging API push endpoint.
type LineClient struct {
	Token    string
	Endpoint string
	HTTP     *http.Client
}

func NewLineClient(token string) *LineClient {
	return &LineClient{
		Token:    token,
		Endpoint: linePushEndpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

type linePushRequest struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *LineClient) PushText(ctx context.Context, to string, text string) error {
	if c.Token == "" {
		return ErrLineNotConfigured
	}

	body, err := json.Marshal(linePushRequest{
		To:       to,
		Messages: []lineMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("LINE push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("LINE push rejected: status=%d body=%s", resp.StatusCode, string(detail))
	}
	return nil
}
