package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"foros-bot/internal/domain"
)

// PostgresRepository is the database-backed alternative to the JSON file
// store. Staff records live in the staff table, reviews in the reviews table
// (staff_id empty for workshop reviews); aggregate ratings are computed on
// read, so Save is a no-op.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) Workshop(category domain.Category) (*domain.Workshop, error) {
	if !category.IsKitchen() {
		return nil, domain.ErrNotFound
	}
	reviews, err := r.targetReviews(category, "")
	if err != nil {
		return nil, err
	}
	return &domain.Workshop{
		Rating:  domain.AverageRating(reviews),
		Reviews: reviews,
	}, nil
}

func (r *PostgresRepository) StaffList(category domain.Category) ([]domain.StaffEntry, error) {
	if !category.Valid() || category.IsKitchen() {
		return nil, domain.ErrNotFound
	}

	rows, err := r.DB.Query(`
		SELECT id, name, phone, COALESCE(photo, '')
		FROM staff
		WHERE category = $1
		ORDER BY id
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var entries []domain.StaffEntry
	for rows.Next() {
		var id string
		var record domain.Staff
		if err := rows.Scan(&id, &record.Name, &record.Phone, &record.Photo); err != nil {
			continue
		}
		reviews, err := r.targetReviews(category, id)
		if err != nil {
			return nil, err
		}
		record.Reviews = reviews
		record.Rating = domain.AverageRating(reviews)
		entries = append(entries, domain.StaffEntry{ID: id, Staff: record})
	}
	return entries, nil
}

func (r *PostgresRepository) StaffByID(category domain.Category, id string) (*domain.Staff, error) {
	var record domain.Staff
	err := r.DB.QueryRow(`
		SELECT name, phone, COALESCE(photo, '')
		FROM staff
		WHERE category = $1 AND id = $2
	`, string(category), id).Scan(&record.Name, &record.Phone, &record.Photo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staff %s/%s: %w", category, id, err)
	}

	reviews, err := r.targetReviews(category, id)
	if err != nil {
		return nil, err
	}
	record.Reviews = reviews
	record.Rating = domain.AverageRating(reviews)
	return &record, nil
}

func (r *PostgresRepository) AppendReview(target domain.Target, review domain.Review) (float64, error) {
	if !target.IsWorkshop() {
		var exists bool
		err := r.DB.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM staff WHERE category = $1 AND id = $2)
		`, string(target.Category), target.StaffID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check staff: %w", err)
		}
		if !exists {
			return 0, domain.ErrNotFound
		}
	}

	_, err := r.DB.Exec(`
		INSERT INTO reviews (category, staff_id, user_id, user_name, rating, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, string(target.Category), target.StaffID, review.UserID, review.UserName,
		review.Rating, review.Text, review.Date.Time)
	if err != nil {
		return 0, fmt.Errorf("failed to insert review: %w", err)
	}

	var rating float64
	err = r.DB.QueryRow(`
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)
		FROM reviews
		WHERE category = $1 AND staff_id = $2
	`, string(target.Category), target.StaffID).Scan(&rating)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute rating: %w", err)
	}
	return rating, nil
}

// Save is a no-op: every append is already durable.
func (r *PostgresRepository) Save() error {
	return nil
}

func (r *PostgresRepository) targetReviews(category domain.Category, staffID string) ([]domain.Review, error) {
	rows, err := r.DB.Query(`
		SELECT user_id, user_name, rating, review_text, created_at
		FROM reviews
		WHERE category = $1 AND staff_id = $2
		ORDER BY created_at
	`, string(category), staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.UserID, &review.UserName, &review.Rating,
			&review.Text, &review.Date.Time); err != nil {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
