package service

import (
	"context"
	"time"

	"foros-bot/internal/domain"
	"foros-bot/internal/storage"
)

// StaffRepository is the persistence contract: read targets, append a review
// (recomputing the target's aggregate rating), flush the document.
type StaffRepository interface {
	Workshop(category domain.Category) (*domain.Workshop, error)
	StaffList(category domain.Category) ([]domain.StaffEntry, error)
	StaffByID(category domain.Category, id string) (*domain.Staff, error)
	AppendReview(target domain.Target, review domain.Review) (float64, error)
	Save() error
}

// SessionStore holds per-reviewer dialogue state. Get returns nil for a
// missing or expired session.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*domain.ReviewDraft, error)
	Set(ctx context.Context, userID int64, draft *domain.ReviewDraft) error
	Clear(ctx context.Context, userID int64) error
}

type ReviewPublisher interface {
	PublishReview(ctx context.Context, event domain.ReviewEvent) error
}

type PhotoResolver interface {
	Resolve(filename string) string
}

type QRGenerator interface {
	Generate(paymentRef string) ([]byte, error)
}

type ReviewServiceInterface interface {
	CanReview(target domain.Target, userID int64, now time.Time) (bool, error)
	SubmitReview(ctx context.Context, target domain.Target, review domain.Review) (float64, error)
	RecentReviews(target domain.Target, limit int) ([]domain.Review, error)
}

type RankingInterface interface {
	TopStaff(minReviews, limit int) ([]domain.RankEntry, error)
}

var (
	_ ReviewServiceInterface = (*ReviewService)(nil)
	_ RankingInterface       = (*RankingService)(nil)
	_ QRGenerator            = (*TipQRGenerator)(nil)

	_ StaffRepository = (*storage.JSONFileRepository)(nil)
	_ StaffRepository = (*storage.PostgresRepository)(nil)
	_ SessionStore    = (*storage.RedisSessionStore)(nil)
	_ SessionStore    = (*storage.MemorySessionStore)(nil)
	_ ReviewPublisher = (*storage.KafkaPublisher)(nil)
	_ PhotoResolver   = (*storage.PhotoDir)(nil)
)
