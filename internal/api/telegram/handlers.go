package tgapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foros-bot/internal/domain"
	"foros-bot/internal/service"

	"github.com/rs/zerolog"
)

// ButtonPress is an inbound callback: an opaque token plus enough message
// context to edit or replace the rendering it came from.
type ButtonPress struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	HasPhoto   bool
	UserID     int64
	UserName   string
	Data       string
}

// InboundMessage is a plain message from a guest. Text is empty for
// non-text content (stickers, photos and the like).
type InboundMessage struct {
	ChatID         int64
	UserID         int64
	UserName       string
	Text           string
	IsStartCommand bool
}

// Gateway is the messaging capability handlers render against; the concrete
// transport stays behind it.
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb Keyboard) error
	SendStartPrompt(ctx context.Context, chatID int64, text string) error
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendPhoto(ctx context.Context, chatID int64, path, caption string, kb Keyboard) error
	SendPhotoData(ctx context.Context, chatID int64, data []byte, caption string, kb Keyboard) error
	Answer(ctx context.Context, callbackID, text string, alert bool) error
}

type Handler struct {
	Reviews  service.ReviewServiceInterface
	Ranking  service.RankingInterface
	Repo     service.StaffRepository
	Sessions service.SessionStore
	Gateway  Gateway
	Photos   service.PhotoResolver
	QR       service.QRGenerator
	Log      zerolog.Logger

	MinTopReviews int
	TopLimit      int
}

func NewHandler(reviews service.ReviewServiceInterface, ranking service.RankingInterface,
	repo service.StaffRepository, sessions service.SessionStore, gateway Gateway,
	photos service.PhotoResolver, qr service.QRGenerator, log zerolog.Logger) *Handler {
	return &Handler{
		Reviews:       reviews,
		Ranking:       ranking,
		Repo:          repo,
		Sessions:      sessions,
		Gateway:       gateway,
		Photos:        photos,
		QR:            qr,
		Log:           log,
		MinTopReviews: service.DefaultMinReviews,
		TopLimit:      service.DefaultTopLimit,
	}
}

func (h *Handler) HandleButton(ctx context.Context, press ButtonPress) error {
	intent := ParseIntent(press.Data)

	switch intent.Kind {
	case IntentMainMenu:
		return h.renderReplace(ctx, press, mainMenuText, mainMenuKeyboard())
	case IntentSelectCategory:
		return h.renderReplace(ctx, press, pickCategoryText, categoryKeyboard())
	case IntentSelectKitchen:
		return h.renderReplace(ctx, press, pickKitchenText, kitchenKeyboard())
	case IntentTopStaff:
		return h.showTopStaff(ctx, press)
	case IntentShowCategory:
		return h.showCategory(ctx, press, intent.Category)
	case IntentShowStaff:
		return h.showStaff(ctx, press, intent.Category, intent.StaffID)
	case IntentStaffReviews:
		return h.showReviews(ctx, press, domain.Target{Category: intent.Category, StaffID: intent.StaffID})
	case IntentWorkshopReviews:
		return h.showReviews(ctx, press, domain.Target{Category: intent.Category})
	case IntentStartStaffReview:
		return h.startReview(ctx, press, domain.Target{Category: intent.Category, StaffID: intent.StaffID})
	case IntentStartWorkshopReview:
		return h.startReview(ctx, press, domain.Target{Category: intent.Category})
	case IntentRate:
		return h.handleRating(ctx, press, intent.Rating)
	case IntentTipQR:
		return h.sendTipQR(ctx, press, intent.Category, intent.StaffID)
	}

	return h.ack(ctx, press)
}

func (h *Handler) HandleMessage(ctx context.Context, msg InboundMessage) error {
	if msg.IsStartCommand {
		return h.Gateway.SendStartPrompt(ctx, msg.ChatID, welcomeText)
	}
	if msg.Text == startButtonLabel {
		return h.Gateway.SendMessage(ctx, msg.ChatID, startMenuText, mainMenuKeyboard())
	}

	draft, err := h.Sessions.Get(ctx, msg.UserID)
	if err != nil {
		return err
	}
	if draft != nil && draft.Phase == domain.PhaseText {
		return h.finishReview(ctx, msg, draft)
	}

	return h.Gateway.SendStartPrompt(ctx, msg.ChatID, fallbackText)
}

func (h *Handler) showTopStaff(ctx context.Context, press ButtonPress) error {
	top, err := h.Ranking.TopStaff(h.MinTopReviews, h.TopLimit)
	if err != nil {
		return err
	}

	text := noTopText
	if len(top) > 0 {
		var b strings.Builder
		b.WriteString("<b>🏆 ТОП сотрудников</b>\n\n")
		for i, entry := range top {
			fmt.Fprintf(&b, "%d. <b>%s</b>\n   %s\n   ⭐ %s | 📝 %d отзывов\n\n",
				i+1, entry.Name, entry.Category, formatRating(entry.Rating), entry.ReviewCount)
		}
		text = b.String()
	}

	if err := h.smartEdit(ctx, press, text, backKeyboard(tokenSelectCategory)); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) showCategory(ctx context.Context, press ButtonPress, category domain.Category) error {
	if category.IsKitchen() {
		workshop, err := h.Repo.Workshop(category)
		if err != nil {
			return err
		}
		text := fmt.Sprintf("<b>%s</b>\n⭐ Рейтинг: %s/5\n📝 Отзывов: %d",
			category.Label(), formatRating(workshop.Rating), len(workshop.Reviews))
		if err := h.smartEdit(ctx, press, text, workshopKeyboard(category)); err != nil {
			return err
		}
		return h.ack(ctx, press)
	}

	entries, err := h.Repo.StaffList(category)
	if err != nil {
		return err
	}
	if err := h.smartEdit(ctx, press, pickStaffText, staffListKeyboard(category, entries)); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

// showStaff always deletes and resends: the new rendering may carry a photo
// and the transport cannot edit a text message into a photo message.
func (h *Handler) showStaff(ctx context.Context, press ButtonPress, category domain.Category, id string) error {
	record, err := h.Repo.StaffByID(category, id)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("<b>%s</b>\n💳 Чаевые официанту: %s\n⭐ Рейтинг: %s/5",
		record.Name, record.Phone, formatRating(record.Rating))
	kb := staffActionsKeyboard(category, id, record.Phone != "")

	if err := h.Gateway.DeleteMessage(ctx, press.ChatID, press.MessageID); err != nil {
		h.Log.Warn().Err(err).Msg("failed to delete message")
	}

	if path := h.Photos.Resolve(record.Photo); path != "" {
		if err := h.Gateway.SendPhoto(ctx, press.ChatID, path, text, kb); err != nil {
			return err
		}
		return h.ack(ctx, press)
	}
	if err := h.Gateway.SendMessage(ctx, press.ChatID, text, kb); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) showReviews(ctx context.Context, press ButtonPress, target domain.Target) error {
	reviews, err := h.Reviews.RecentReviews(target, 5)
	if err != nil {
		return err
	}

	text := noReviewsText
	if len(reviews) > 0 {
		var b strings.Builder
		if target.IsWorkshop() {
			b.WriteString("<b>Отзывы о цехе:</b>\n\n")
		} else {
			b.WriteString("<b>Отзывы:</b>\n\n")
		}
		for _, review := range reviews {
			fmt.Fprintf(&b, "⭐ %d — %s\n%s\n\n", review.Rating, review.UserName, review.Text)
		}
		text = b.String()
	}

	kb := backKeyboard(staffToken(target.Category, target.StaffID))
	if target.IsWorkshop() {
		kb = workshopKeyboard(target.Category)
	}
	if err := h.smartEdit(ctx, press, text, kb); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) startReview(ctx context.Context, press ButtonPress, target domain.Target) error {
	allowed, err := h.Reviews.CanReview(target, press.UserID, time.Now())
	if err != nil {
		return err
	}
	if !allowed {
		text := cooldownStaffText
		if target.IsWorkshop() {
			text = cooldownWorkshopText
		}
		return h.Gateway.Answer(ctx, press.CallbackID, text, true)
	}

	draft := &domain.ReviewDraft{Phase: domain.PhaseRating, Target: target}
	if err := h.Sessions.Set(ctx, press.UserID, draft); err != nil {
		return err
	}

	prompt := askStaffRatingText
	if target.IsWorkshop() {
		prompt = askWorkshopRatingText
	}
	if err := h.smartEdit(ctx, press, prompt, ratingKeyboard()); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) handleRating(ctx context.Context, press ButtonPress, rating int) error {
	draft, err := h.Sessions.Get(ctx, press.UserID)
	if err != nil {
		return err
	}
	if draft == nil || draft.Phase != domain.PhaseRating {
		// stale star button from an expired dialogue
		return h.ack(ctx, press)
	}

	draft.Rating = rating
	draft.Phase = domain.PhaseText
	if err := h.Sessions.Set(ctx, press.UserID, draft); err != nil {
		return err
	}

	if err := h.smartEdit(ctx, press, askReviewTextText, nil); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) finishReview(ctx context.Context, msg InboundMessage, draft *domain.ReviewDraft) error {
	if msg.Text == "" {
		// non-text content mid-dialogue: keep the session, ask again
		return h.Gateway.SendMessage(ctx, msg.ChatID, nonTextReplyText, nil)
	}

	review := domain.Review{
		UserID:   msg.UserID,
		UserName: msg.UserName,
		Rating:   draft.Rating,
		Text:     msg.Text,
		Date:     domain.ReviewTime{Time: time.Now()},
	}

	if _, err := h.Reviews.SubmitReview(ctx, draft.Target, review); err != nil {
		if errors.Is(err, service.ErrReviewCooldown) {
			if clearErr := h.Sessions.Clear(ctx, msg.UserID); clearErr != nil {
				h.Log.Warn().Err(clearErr).Msg("failed to clear session")
			}
			text := cooldownStaffText
			if draft.Target.IsWorkshop() {
				text = cooldownWorkshopText
			}
			return h.Gateway.SendStartPrompt(ctx, msg.ChatID, text)
		}
		return err
	}

	if err := h.Sessions.Clear(ctx, msg.UserID); err != nil {
		h.Log.Warn().Err(err).Msg("failed to clear session")
	}
	return h.Gateway.SendStartPrompt(ctx, msg.ChatID, reviewSavedText)
}

func (h *Handler) sendTipQR(ctx context.Context, press ButtonPress, category domain.Category, id string) error {
	record, err := h.Repo.StaffByID(category, id)
	if err != nil {
		return err
	}
	if record.Phone == "" {
		return h.ack(ctx, press)
	}

	png, err := h.QR.Generate(record.Phone)
	if err != nil {
		return fmt.Errorf("failed to generate tip QR: %w", err)
	}

	caption := fmt.Sprintf("💳 Чаевые для <b>%s</b>: %s", record.Name, record.Phone)
	if err := h.Gateway.SendPhotoData(ctx, press.ChatID, png, caption,
		backKeyboard(staffToken(category, id))); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

// renderReplace deletes the pressed message and sends a fresh one. Used on
// transitions where the previous rendering may carry a photo.
func (h *Handler) renderReplace(ctx context.Context, press ButtonPress, text string, kb Keyboard) error {
	if err := h.replace(ctx, press, text, kb); err != nil {
		return err
	}
	return h.ack(ctx, press)
}

func (h *Handler) replace(ctx context.Context, press ButtonPress, text string, kb Keyboard) error {
	if err := h.Gateway.DeleteMessage(ctx, press.ChatID, press.MessageID); err != nil {
		h.Log.Warn().Err(err).Msg("failed to delete message")
	}
	return h.Gateway.SendMessage(ctx, press.ChatID, text, kb)
}

// smartEdit edits in place when the pressed message is plain text and falls
// back to delete-then-resend when it carries a photo.
func (h *Handler) smartEdit(ctx context.Context, press ButtonPress, text string, kb Keyboard) error {
	if press.HasPhoto {
		return h.replace(ctx, press, text, kb)
	}
	return h.Gateway.EditMessage(ctx, press.ChatID, press.MessageID, text, kb)
}

func (h *Handler) ack(ctx context.Context, press ButtonPress) error {
	return h.Gateway.Answer(ctx, press.CallbackID, "", false)
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
