package tests

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"foros-bot/internal/domain"
	"foros-bot/internal/service"
	"foros-bot/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	event domain.ReviewEvent
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (p *fakePublisher) PublishReview(_ context.Context, event domain.ReviewEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, capturedEvent{event: event})
	return nil
}

func guestReview(userID int64, rating int, at time.Time) domain.Review {
	return domain.Review{
		UserID:   userID,
		UserName: "Гость",
		Rating:   rating,
		Text:     "Отзыв",
		Date:     domain.ReviewTime{Time: at},
	}
}

func TestCanLeaveReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reviews []domain.Review
		userID  int64
		want    bool
	}{
		{name: "no_history", reviews: nil, userID: 100, want: true},
		{
			name:    "recent_review_blocks",
			reviews: []domain.Review{guestReview(100, 5, now.Add(-time.Hour))},
			userID:  100,
			want:    false,
		},
		{
			name:    "old_review_allows",
			reviews: []domain.Review{guestReview(100, 5, now.Add(-25*time.Hour))},
			userID:  100,
			want:    true,
		},
		{
			name:    "other_reviewer_does_not_block",
			reviews: []domain.Review{guestReview(200, 5, now.Add(-time.Hour))},
			userID:  100,
			want:    true,
		},
		{
			name: "any_recent_review_blocks",
			reviews: []domain.Review{
				guestReview(100, 5, now.Add(-48*time.Hour)),
				guestReview(100, 4, now.Add(-time.Minute)),
			},
			userID: 100,
			want:   false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want,
				service.CanLeaveReview(testCase.reviews, testCase.userID, now))
		})
	}
}

func TestReviewService_SubmitReview(t *testing.T) {
	repo := newTestRepo(t)
	publisher := &fakePublisher{}
	svc := service.NewReviewService(repo, publisher, zerolog.Nop())
	ctx := context.Background()

	target := domain.Target{Category: domain.CategoryWaiters, StaffID: "1"}
	now := time.Now()

	rating, err := svc.SubmitReview(ctx, target, guestReview(500, 3, now))
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating) // fixture holds 5 and 4

	require.Len(t, publisher.events, 1)
	event := publisher.events[0].event
	assert.Equal(t, "new_review", event.Type)
	assert.Equal(t, domain.CategoryWaiters, event.Category)
	assert.Equal(t, "1", event.StaffID)
	assert.Equal(t, 3, event.Rating)

	// same reviewer again within the cooldown window
	_, err = svc.SubmitReview(ctx, target, guestReview(500, 5, now.Add(time.Hour)))
	assert.ErrorIs(t, err, service.ErrReviewCooldown)

	// a different reviewer is unaffected
	_, err = svc.SubmitReview(ctx, target, guestReview(501, 5, now))
	require.NoError(t, err)
}

func TestReviewService_SubmitReview_PublisherFailureIsSoft(t *testing.T) {
	repo := newTestRepo(t)
	publisher := &fakePublisher{err: assert.AnError}
	svc := service.NewReviewService(repo, publisher, zerolog.Nop())

	target := domain.Target{Category: domain.CategoryHotKitchen}
	rating, err := svc.SubmitReview(context.Background(), target, guestReview(500, 4, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)
}

func TestReviewService_SubmitReview_NilPublisher(t *testing.T) {
	repo := newTestRepo(t)
	svc := service.NewReviewService(repo, nil, zerolog.Nop())

	target := domain.Target{Category: domain.CategoryColdKitchen}
	_, err := svc.SubmitReview(context.Background(), target, guestReview(500, 5, time.Now()))
	require.NoError(t, err)
}

func TestReviewService_SubmitReview_UnknownTarget(t *testing.T) {
	repo := newTestRepo(t)
	svc := service.NewReviewService(repo, nil, zerolog.Nop())

	target := domain.Target{Category: domain.CategoryWaiters, StaffID: "99"}
	_, err := svc.SubmitReview(context.Background(), target, guestReview(500, 5, time.Now()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_RecentReviews(t *testing.T) {
	repo := newTestRepo(t)
	svc := service.NewReviewService(repo, nil, zerolog.Nop())
	target := domain.Target{Category: domain.CategoryColdKitchen}

	base := time.Now().Add(-10 * 24 * time.Hour)
	for i := 0; i < 7; i++ {
		_, err := repo.AppendReview(target, guestReview(int64(600+i), 5, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	recent, err := svc.RecentReviews(target, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	// the tail of the append order
	assert.Equal(t, int64(602), recent[0].UserID)
	assert.Equal(t, int64(606), recent[4].UserID)

	all, err := svc.RecentReviews(target, 100)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestRankingService_TopStaff(t *testing.T) {
	repo := newTestRepo(t)
	svc := service.NewRankingService(repo)

	// fixture: waiter 1 has two reviews (rating 4.5), waiter 2 has none,
	// bartender 1 has three reviews (rating 5)
	top, err := svc.TopStaff(3, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Виктор", top[0].Name)
	assert.Equal(t, 5.0, top[0].Rating)
	assert.Equal(t, 3, top[0].ReviewCount)
	assert.Equal(t, domain.CategoryBartenders.Label(), top[0].Category)

	// lowering the threshold pulls the waiter in, sorted by rating desc
	top, err = svc.TopStaff(2, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Виктор", top[0].Name)
	assert.Equal(t, "Анна", top[1].Name)

	top, err = svc.TopStaff(2, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestTipQRGenerator(t *testing.T) {
	generator := &service.TipQRGenerator{}

	png, err := generator.Generate("+79990001122")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = generator.Generate("")
	assert.Error(t, err)
}

func newTestRepo(t *testing.T) *storage.JSONFileRepository {
	t.Helper()
	return openFixtureRepo(t, filepath.Join(t.TempDir(), "staff_data.json"))
}
