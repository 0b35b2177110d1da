package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
)

const telegramTimeout = 10 * time.Second

var moscow = loadMoscow()

func loadMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// TelegramNotifier posts leads to a Telegram chat through the Bot API
type TelegramNotifier struct {
	client   *http.Client
	apiBase  string
	botToken string
	chatID   string
	logger   *slog.Logger
	now      func() time.Time
}

// NewTelegramNotifier creates a new TelegramNotifier. It returns nil when the bot is not configured.
func NewTelegramNotifier(apiBase, botToken, chatID string, logger *slog.Logger) *TelegramNotifier {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &TelegramNotifier{
		client:   &http.Client{Timeout: telegramTimeout},
		apiBase:  strings.TrimRight(apiBase, "/"),
		botToken: botToken,
		chatID:   chatID,
		logger:   logger,
		now:      time.Now,
	}
}

type telegramSendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify sends the lead as a Markdown message
func (n *TelegramNotifier) Notify(ctx context.Context, lead *models.Lead) error {
	at := lead.ReceivedAt
	if at.IsZero() {
		at = n.now()
	}

	payload, err := json.Marshal(telegramSendMessage{
		ChatID:    n.chatID,
		Text:      formatLeadMessage(lead, at),
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		n.logger.Error("telegram api error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return fmt.Errorf("%w: telegram returned %d", models.ErrNotificationFailed, resp.StatusCode)
	}

	n.logger.Info("lead sent to telegram", slog.String("phone", pkglogger.MaskPhone(lead.Phone)))
	return nil
}

func formatLeadMessage(lead *models.Lead, now time.Time) string {
	var b strings.Builder
	b.WriteString("🔔 *Новая заявка с сайта!*\n\n")
	fmt.Fprintf(&b, "👤 *Имя:* %s\n", escapeMarkdown(lead.Name))
	fmt.Fprintf(&b, "📞 *Телефон:* %s\n", escapeMarkdown(lead.Phone))
	if lead.Message != "" {
		fmt.Fprintf(&b, "💬 *Сообщение:* %s\n", escapeMarkdown(lead.Message))
	}
	fmt.Fprintf(&b, "\n📅 *Дата:* %s", now.In(moscow).Format("02.01.2006, 15:04:05"))
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// escapeMarkdown escapes the Telegram Markdown v1 control characters
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
