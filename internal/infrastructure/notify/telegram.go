package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/refdata/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	maxAttempts    = 3
	retryWait      = time.Second
)

// TelegramNotifier sends operational alerts to a Telegram chat. An
// empty token disables sending entirely; Send then becomes a no-op.
type TelegramNotifier struct {
	token      string
	chatID     string
	apiBase    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTelegramNotifier creates a TelegramNotifier from configuration
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zap.Logger) *TelegramNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelegramNotifier{
		token:      cfg.Token,
		chatID:     cfg.ChatID,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether the notifier will actually send
func (n *TelegramNotifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

// Send delivers a message, retrying up to three times with a fixed
// one-second wait between attempts. Alerts are best effort: the last
// error is returned but callers usually just log it.
func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := n.send(ctx, text); err != nil {
			lastErr = err
			n.logger.Warn("telegram send failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retryWait):
				}
			}
			continue
		}
		return nil
	}
	return lastErr
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}
