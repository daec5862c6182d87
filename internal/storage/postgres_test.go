package storage

import (
	"testing"
	"time"

	"foros-bot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_StaffByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT name, phone, COALESCE").
		WithArgs("waiters", "1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone", "photo"}).
			AddRow("Анна", "+79990001122", "anna.jpg"))
	mock.ExpectQuery("SELECT user_id, user_name, rating, review_text, created_at").
		WithArgs("waiters", "1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name", "rating", "review_text", "created_at"}).
			AddRow(100, "Гость", 5, "Отлично", time.Now()).
			AddRow(101, "Гость 2", 4, "Хорошо", time.Now()))

	record, err := repo.StaffByID(domain.CategoryWaiters, "1")
	require.NoError(t, err)
	assert.Equal(t, "Анна", record.Name)
	assert.Equal(t, 4.5, record.Rating)
	assert.Len(t, record.Reviews, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_StaffByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT name, phone, COALESCE").
		WithArgs("waiters", "99").
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone", "photo"}))

	_, err = repo.StaffByID(domain.CategoryWaiters, "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AppendReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	review := domain.Review{
		UserID: 100, UserName: "Гость", Rating: 4, Text: "Хорошо",
		Date: domain.ReviewTime{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("waiters", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs("waiters", "1", review.UserID, review.UserName, review.Rating,
			review.Text, review.Date.Time).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COALESCE\\(ROUND").
		WithArgs("waiters", "1").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(4.3))

	rating, err := repo.AppendReview(domain.Target{Category: domain.CategoryWaiters, StaffID: "1"}, review)
	require.NoError(t, err)
	assert.Equal(t, 4.3, rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AppendReview_UnknownStaff(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("waiters", "99").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = repo.AppendReview(
		domain.Target{Category: domain.CategoryWaiters, StaffID: "99"},
		domain.Review{Rating: 5, Date: domain.ReviewTime{Time: time.Now()}},
	)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AppendReview_Workshop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	review := domain.Review{
		UserID: 100, UserName: "Гость", Rating: 5, Text: "Свежо",
		Date: domain.ReviewTime{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	// workshops have no staff row to verify
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs("cold_kitchen", "", review.UserID, review.UserName, review.Rating,
			review.Text, review.Date.Time).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COALESCE\\(ROUND").
		WithArgs("cold_kitchen", "").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5.0))

	rating, err := repo.AppendReview(domain.Target{Category: domain.CategoryColdKitchen}, review)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
