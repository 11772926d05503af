package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Config holds the push gateway settings.
type Config struct {
	Endpoint  string
	ServerKey string
}

// Sender implements ports.PushSender against an FCM-style HTTP gateway.
// Delivery is fire-and-forget; callers never fail a primary operation on a
// send error.
type Sender struct {
	config *Config
	client *http.Client
	logger *logrus.Logger
}

// NewSender creates a push sender.
func NewSender(config *Config, logger *logrus.Logger) *Sender {
	return &Sender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type pushPayload struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send implements PushSender.Send.
func (s *Sender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if deviceToken == "" {
		return fmt.Errorf("no device token")
	}
	payload, err := json.Marshal(pushPayload{
		To:           deviceToken,
		Notification: pushNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.config.ServerKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push dispatch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned %d", resp.StatusCode)
	}
	s.logger.WithField("title", title).Debug("push dispatched")
	return nil
}

var _ ports.PushSender = (*Sender)(nil)
