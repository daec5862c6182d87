package service

import (
	"sort"

	"foros-bot/internal/domain"
)

const (
	DefaultMinReviews = 3
	DefaultTopLimit   = 10
)

type RankingService struct {
	repository StaffRepository
}

func NewRankingService(repository StaffRepository) *RankingService {
	return &RankingService{repository: repository}
}

// TopStaff builds the leaderboard: staff categories only, entries with a
// nonzero rating and at least minReviews reviews, sorted by rating
// descending. The sort is stable, so ties keep encounter order (category
// order, then staff id within a category).
func (s *RankingService) TopStaff(minReviews, limit int) ([]domain.RankEntry, error) {
	var top []domain.RankEntry
	for _, category := range domain.StaffCategories {
		entries, err := s.repository.StaffList(category)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Staff.Rating > 0 && len(entry.Staff.Reviews) >= minReviews {
				top = append(top, domain.RankEntry{
					Name:        entry.Staff.Name,
					Rating:      entry.Staff.Rating,
					ReviewCount: len(entry.Staff.Reviews),
					Category:    category.Label(),
				})
			}
		}
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
