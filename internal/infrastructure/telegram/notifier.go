package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/ports"
)

// Notifier publishes run digests to a Telegram chat via the bot API.
type Notifier struct {
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify posts a Markdown digest of the run's matches.
func (n *Notifier) Notify(ctx context.Context, matches []domain.Listing, criteria domain.Criteria) error {
	if len(matches) == 0 {
		return nil
	}
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", buildMessage(matches))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func buildMessage(matches []domain.Listing) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%d new matching listing(s)*\n\n", len(matches))
	for _, listing := range matches {
		fmt.Fprintf(&b, "- %s\n%.0f EUR, %.1f m2\n%s\n\n",
			listing.Title,
			listing.Price,
			listing.Area,
			listing.Link)
	}

	return b.String()
}
