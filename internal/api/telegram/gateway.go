package tgapi

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// BotGateway renders keyboards and messages through the Telegram Bot API.
type BotGateway struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewBotGateway(api *tgbotapi.BotAPI, log zerolog.Logger) *BotGateway {
	return &BotGateway{api: api, log: log}
}

var _ Gateway = (*BotGateway)(nil)

func inlineMarkup(kb Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func (g *BotGateway) SendMessage(ctx context.Context, chatID int64, text string, kb Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup := inlineMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendStartPrompt sends text with the persistent START reply keyboard so the
// guest can always reopen the menu.
func (g *BotGateway) SendStartPrompt(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(startButtonLabel)),
	)
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (g *BotGateway) EditMessage(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = inlineMarkup(kb)
	if _, err := g.api.Send(edit); err != nil {
		// Telegram rejects edits that change nothing; treat as rendered.
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (g *BotGateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := g.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (g *BotGateway) SendPhoto(ctx context.Context, chatID int64, path, caption string, kb Keyboard) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if markup := inlineMarkup(kb); markup != nil {
		photo.ReplyMarkup = markup
	}
	if _, err := g.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}

func (g *BotGateway) SendPhotoData(ctx context.Context, chatID int64, data []byte, caption string, kb Keyboard) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "tip_qr.png", Bytes: data})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if markup := inlineMarkup(kb); markup != nil {
		photo.ReplyMarkup = markup
	}
	if _, err := g.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}

func (g *BotGateway) Answer(ctx context.Context, callbackID, text string, alert bool) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = alert
	if _, err := g.api.Request(callback); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// Run polls for updates and dispatches them to the handler until the context
// is canceled. Updates are handled sequentially: dialogue state transitions
// must not race with each other.
func Run(ctx context.Context, api *tgbotapi.BotAPI, handler *Handler, log zerolog.Logger) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := api.GetUpdatesChan(updateConfig)

	log.Info().Str("bot", api.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			log.Info().Msg("bot stopped")
			return
		case update := <-updates:
			dispatch(ctx, handler, update, log)
		}
	}
}

func dispatch(ctx context.Context, handler *Handler, update tgbotapi.Update, log zerolog.Logger) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return
		}
		press := ButtonPress{
			CallbackID: cb.ID,
			ChatID:     cb.Message.Chat.ID,
			MessageID:  cb.Message.MessageID,
			HasPhoto:   len(cb.Message.Photo) > 0,
			UserID:     cb.From.ID,
			UserName:   displayName(cb.From),
			Data:       cb.Data,
		}
		if err := handler.HandleButton(ctx, press); err != nil {
			log.Error().Err(err).Str("data", cb.Data).Msg("failed to handle button")
		}
	case update.Message != nil:
		m := update.Message
		msg := InboundMessage{
			ChatID:         m.Chat.ID,
			UserID:         m.From.ID,
			UserName:       displayName(m.From),
			Text:           m.Text,
			IsStartCommand: m.IsCommand() && m.Command() == "start",
		}
		if err := handler.HandleMessage(ctx, msg); err != nil {
			log.Error().Err(err).Msg("failed to handle message")
		}
	}
}

func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}
