package telegram

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // decoder registration
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"album-uploader/configs"
	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"  // decoder registration
	_ "golang.org/x/image/tiff" // decoder registration
	_ "golang.org/x/image/webp" // decoder registration
)

// Bot API defaults
const (
	defaultAPIEndpoint  = tgbotapi.APIEndpoint
	defaultFileEndpoint = tgbotapi.FileEndpoint
	defaultTimeout      = 30 * time.Second

	// MaxDownloadSize is the largest file the Bot API lets bots download
	MaxDownloadSize = 20 << 20
)

// Compile-time checks
var (
	_ output.ChatTransport = (*TelegramClientAdapter)(nil)
	_ output.ImageFetcher  = (*TelegramClientAdapter)(nil)
)

// TelegramClientAdapter struct - Output adapter for the Telegram Bot API.
// Serves as both the chat transport and the image fetcher.
type TelegramClientAdapter struct {
	bot          *tgbotapi.BotAPI
	httpClient   *http.Client
	fileEndpoint string
}

// NewTelegramClientAdapter func - Creates new Telegram client adapter.
// The token is checked against getMe, so a bad credential fails here.
func NewTelegramClientAdapter(config configs.Telegram) (*TelegramClientAdapter, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("%w: telegram token is required", domain.ErrConfiguration)
	}

	apiEndpoint := config.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = defaultAPIEndpoint
	}
	fileEndpoint := config.FileEndpoint
	if fileEndpoint == "" {
		fileEndpoint = defaultFileEndpoint
	}
	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	if err := tgbotapi.SetLogger(logrus.WithField("component", "telegram")); err != nil {
		return nil, fmt.Errorf("failed to set telegram logger: %w", err)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(config.Token, apiEndpoint, httpClient)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorChatTransport, "failed to create bot api client", err)
	}
	bot.Debug = config.Debug

	logrus.Infof("Telegram client adapter initialized for @%s, timeout: %v", bot.Self.UserName, timeout)

	return &TelegramClientAdapter{
		bot:          bot,
		httpClient:   httpClient,
		fileEndpoint: fileEndpoint,
	}, nil
}

// BotUsername returns the username reported by getMe
func (a *TelegramClientAdapter) BotUsername() string {
	return a.bot.Self.UserName
}

// SendMessage sends text to a chat, with one inline keyboard row per option
func (a *TelegramClientAdapter) SendMessage(ctx context.Context, chatID, text string, options []domain.InlineOption) error {
	if err := ctx.Err(); err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "send message cancelled", err)
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "invalid chat id "+chatID, err)
	}

	msg := tgbotapi.NewMessage(id, text)
	if len(options) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
		for _, option := range options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option.Text, option.Payload),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	if _, err := a.bot.Send(msg); err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "failed to send message", err)
	}

	logrus.Debugf("Sent message to chat %s (%d options)", chatID, len(options))
	return nil
}

// AnswerCallback answers a callback query as a toast, or as an alert popup
func (a *TelegramClientAdapter) AnswerCallback(ctx context.Context, queryID, text string, alert bool) error {
	if err := ctx.Err(); err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "answer callback cancelled", err)
	}

	callback := tgbotapi.NewCallback(queryID, text)
	if alert {
		callback = tgbotapi.NewCallbackWithAlert(queryID, text)
	}

	if _, err := a.bot.Request(callback); err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "failed to answer callback query", err)
	}
	return nil
}

// ResolveImage downloads a file by its file_id and measures it
func (a *TelegramClientAdapter) ResolveImage(ctx context.Context, fileRef string) (*domain.Image, error) {
	file, err := a.bot.GetFile(tgbotapi.FileConfig{FileID: fileRef})
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorImageFetch, "failed to resolve file", err)
	}
	if file.FileSize > MaxDownloadSize {
		return nil, domain.NewCollaboratorError(domain.CollaboratorImageFetch,
			fmt.Sprintf("file is %d bytes, limit is %d", file.FileSize, MaxDownloadSize), nil)
	}

	data, err := a.download(ctx, fmt.Sprintf(a.fileEndpoint, a.bot.Token, file.FilePath))
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorImageFetch, "failed to download file", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorImageFetch, "failed to read image dimensions", err)
	}

	logrus.Infof("Resolved file %s: %s %dx%d, %d bytes", fileRef, format, cfg.Width, cfg.Height, len(data))

	return &domain.Image{
		FileRef: fileRef,
		Bytes:   data,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

func (a *TelegramClientAdapter) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("file exceeds %d bytes", MaxDownloadSize)
	}
	return data, nil
}

// RegisterWebhook points the bot's webhook at url
func (a *TelegramClientAdapter) RegisterWebhook(url string) error {
	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("%w: invalid webhook url: %v", domain.ErrConfiguration, err)
	}
	webhook.AllowedUpdates = []string{"message", "callback_query"}

	if _, err := a.bot.Request(webhook); err != nil {
		return domain.NewCollaboratorError(domain.CollaboratorChatTransport, "failed to set webhook", err)
	}

	logrus.Infof("Webhook registered: %s", url)
	return nil
}
