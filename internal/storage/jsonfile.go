package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"foros-bot/internal/domain"
)

// JSONFileRepository keeps the whole staff document in memory and overwrites
// its backing file on every save. Single-writer, single-instance: the mutex
// only protects in-process readers from observing a half-applied append.
type JSONFileRepository struct {
	path string

	mu        sync.Mutex
	workshops map[domain.Category]*domain.Workshop
	staff     map[domain.Category]map[string]*domain.Staff
}

// OpenJSONFile reads the document at path, synthesizing a default document
// when the file does not exist and back-filling any missing category so
// older files remain loadable.
func OpenJSONFile(path string) (*JSONFileRepository, error) {
	r := &JSONFileRepository{
		path:      path,
		workshops: make(map[domain.Category]*domain.Workshop),
		staff:     make(map[domain.Category]map[string]*domain.Staff),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONFileRepository) load() error {
	raw := map[string]json.RawMessage{}

	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// no file yet: fall through to the default document
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", r.path, err)
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", r.path, err)
		}
	}

	for _, c := range domain.KitchenCategories {
		workshop := &domain.Workshop{Reviews: []domain.Review{}}
		if msg, ok := raw[string(c)]; ok {
			if err := json.Unmarshal(msg, workshop); err != nil {
				return fmt.Errorf("failed to parse workshop %s: %w", c, err)
			}
			if workshop.Reviews == nil {
				workshop.Reviews = []domain.Review{}
			}
		}
		r.workshops[c] = workshop
	}

	for _, c := range domain.StaffCategories {
		staff := map[string]*domain.Staff{}
		if msg, ok := raw[string(c)]; ok {
			if err := json.Unmarshal(msg, &staff); err != nil {
				return fmt.Errorf("failed to parse category %s: %w", c, err)
			}
			for _, record := range staff {
				if record.Reviews == nil {
					record.Reviews = []domain.Review{}
				}
			}
		}
		r.staff[c] = staff
	}

	return nil
}

func (r *JSONFileRepository) Workshop(category domain.Category) (*domain.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workshop, ok := r.workshops[category]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *workshop
	copied.Reviews = append([]domain.Review{}, workshop.Reviews...)
	return &copied, nil
}

// StaffList returns the category's records ordered by staff id, which fixes
// the encounter order for ranking and keyboard rendering.
func (r *JSONFileRepository) StaffList(category domain.Category) ([]domain.StaffEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staff, ok := r.staff[category]
	if !ok {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(staff))
	for id := range staff {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]domain.StaffEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, domain.StaffEntry{ID: id, Staff: *staff[id]})
	}
	return entries, nil
}

func (r *JSONFileRepository) StaffByID(category domain.Category, id string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staff, ok := r.staff[category]
	if !ok {
		return nil, domain.ErrNotFound
	}
	record, ok := staff[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *record
	copied.Reviews = append([]domain.Review{}, record.Reviews...)
	return &copied, nil
}

// AppendReview appends the review to the target and recomputes its aggregate
// rating. The new rating is returned; Save must be called to flush it.
func (r *JSONFileRepository) AppendReview(target domain.Target, review domain.Review) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target.IsWorkshop() {
		workshop, ok := r.workshops[target.Category]
		if !ok {
			return 0, domain.ErrNotFound
		}
		workshop.Reviews = append(workshop.Reviews, review)
		workshop.Rating = domain.AverageRating(workshop.Reviews)
		return workshop.Rating, nil
	}

	staff, ok := r.staff[target.Category]
	if !ok {
		return 0, domain.ErrNotFound
	}
	record, ok := staff[target.StaffID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	record.Reviews = append(record.Reviews, review)
	record.Rating = domain.AverageRating(record.Reviews)
	return record.Rating, nil
}

// Save serializes the whole document and overwrites the file. Last write
// wins; there is no partial-write protection beyond what the OS provides.
func (r *JSONFileRepository) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := make(map[string]interface{}, len(r.workshops)+len(r.staff))
	for c, workshop := range r.workshops {
		doc[string(c)] = workshop
	}
	for c, staff := range r.staff {
		doc[string(c)] = staff
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}
