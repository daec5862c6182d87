package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foros-bot/internal/domain"

	"github.com/rs/zerolog"
)

const reviewCooldown = 24 * time.Hour

var ErrReviewCooldown = errors.New("reviewer already reviewed this target within 24 hours")

type ReviewService struct {
	repository StaffRepository
	publisher  ReviewPublisher
	log        zerolog.Logger
}

func NewReviewService(repository StaffRepository, publisher ReviewPublisher, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		repository: repository,
		publisher:  publisher,
		log:        log,
	}
}

// CanLeaveReview reports whether the reviewer may submit a new review for a
// target with the given history: false while any of their prior reviews is
// strictly younger than 24 hours.
func CanLeaveReview(reviews []domain.Review, userID int64, now time.Time) bool {
	for _, r := range reviews {
		if r.UserID == userID && now.Sub(r.Date.Time) < reviewCooldown {
			return false
		}
	}
	return true
}

func (s *ReviewService) CanReview(target domain.Target, userID int64, now time.Time) (bool, error) {
	reviews, err := s.targetReviews(target)
	if err != nil {
		return false, err
	}
	return CanLeaveReview(reviews, userID, now), nil
}

// SubmitReview appends the review, recomputes the target's aggregate rating,
// persists the document and emits a review event. The cooldown is re-checked
// here so a lingering dialogue cannot sneak past the guard.
func (s *ReviewService) SubmitReview(ctx context.Context, target domain.Target, review domain.Review) (float64, error) {
	reviews, err := s.targetReviews(target)
	if err != nil {
		return 0, err
	}
	if !CanLeaveReview(reviews, review.UserID, review.Date.Time) {
		return 0, ErrReviewCooldown
	}

	rating, err := s.repository.AppendReview(target, review)
	if err != nil {
		return 0, fmt.Errorf("failed to append review: %w", err)
	}
	if err := s.repository.Save(); err != nil {
		return 0, fmt.Errorf("failed to persist reviews: %w", err)
	}

	if s.publisher != nil {
		event := domain.ReviewEvent{
			Type:      "new_review",
			Category:  target.Category,
			StaffID:   target.StaffID,
			Rating:    review.Rating,
			Timestamp: review.Date.Time,
		}
		if err := s.publisher.PublishReview(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("category", string(target.Category)).
				Msg("failed to publish review event")
		}
	}

	s.log.Info().Str("category", string(target.Category)).Str("staff_id", target.StaffID).
		Int("rating", review.Rating).Float64("new_rating", rating).Msg("review saved")
	return rating, nil
}

// RecentReviews returns the tail of the target's append-only review sequence.
func (s *ReviewService) RecentReviews(target domain.Target, limit int) ([]domain.Review, error) {
	reviews, err := s.targetReviews(target)
	if err != nil {
		return nil, err
	}
	if len(reviews) > limit {
		reviews = reviews[len(reviews)-limit:]
	}
	return reviews, nil
}

func (s *ReviewService) targetReviews(target domain.Target) ([]domain.Review, error) {
	if target.IsWorkshop() {
		workshop, err := s.repository.Workshop(target.Category)
		if err != nil {
			return nil, err
		}
		return workshop.Reviews, nil
	}
	record, err := s.repository.StaffByID(target.Category, target.StaffID)
	if err != nil {
		return nil, err
	}
	return record.Reviews, nil
}
