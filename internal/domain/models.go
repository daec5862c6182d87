package domain

import (
	"encoding/json"
	"errors"
	"math"
	"time"
)

var ErrNotFound = errors.New("review target not found")

type Category string

const (
	CategoryWaiters       Category = "waiters"
	CategoryBartenders    Category = "bartenders"
	CategoryColdKitchen   Category = "cold_kitchen"
	CategoryHotKitchen    Category = "hot_kitchen"
	CategoryPastryKitchen Category = "pastry_kitchen"
)

// StaffCategories hold named staff records, KitchenCategories are workshops
// rated in aggregate. The slice order is fixed: it defines the encounter
// order for ranking ties.
var (
	StaffCategories   = []Category{CategoryWaiters, CategoryBartenders}
	KitchenCategories = []Category{CategoryColdKitchen, CategoryHotKitchen, CategoryPastryKitchen}
)

var categoryLabels = map[Category]string{
	CategoryWaiters:       "🤵 Официанты",
	CategoryBartenders:    "🍸 Бар",
	CategoryColdKitchen:   "🥗 Холодный цех",
	CategoryHotKitchen:    "🍲 Горячий цех",
	CategoryPastryKitchen: "🍕 Мучной цех",
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) IsKitchen() bool {
	switch c {
	case CategoryColdKitchen, CategoryHotKitchen, CategoryPastryKitchen:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ReviewTime marshals as RFC3339 and additionally accepts the zoneless
// ISO-8601 form found in data files written by the previous bot.
type ReviewTime struct {
	time.Time
}

const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

func (t ReviewTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *ReviewTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.ParseInLocation(legacyTimeLayout, raw, time.Local)
	}
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Review is immutable once appended; the reviews slice keeps insertion order.
type Review struct {
	UserID   int64      `json:"user_id"`
	UserName string     `json:"user"`
	Rating   int        `json:"rating"`
	Text     string     `json:"text"`
	Date     ReviewTime `json:"date"`
}

type Staff struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Rating  float64  `json:"rating"`
	Reviews []Review `json:"reviews"`
	Photo   string   `json:"photo,omitempty"`
}

type Workshop struct {
	Rating  float64  `json:"rating"`
	Reviews []Review `json:"reviews"`
}

// StaffEntry pairs a staff record with its document key, for ordered listings.
type StaffEntry struct {
	ID    string
	Staff Staff
}

// Target identifies the subject of a review: a staff member, or a kitchen
// workshop when StaffID is empty.
type Target struct {
	Category Category `json:"category"`
	StaffID  string   `json:"staff_id,omitempty"`
}

func (t Target) IsWorkshop() bool {
	return t.StaffID == ""
}

type RankEntry struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Category    string  `json:"category"`
}

type ReviewEvent struct {
	Type      string    `json:"type"`
	Category  Category  `json:"category"`
	StaffID   string    `json:"staff_id,omitempty"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

type DialoguePhase string

const (
	PhaseRating DialoguePhase = "rating"
	PhaseText   DialoguePhase = "text"
)

// ReviewDraft is the ephemeral per-reviewer state of an in-progress review
// submission. It lives in a session store, never in the document.
type ReviewDraft struct {
	Phase  DialoguePhase `json:"phase"`
	Target Target        `json:"target"`
	Rating int           `json:"rating,omitempty"`
}

// AverageRating is the arithmetic mean of all review ratings rounded to one
// decimal place, 0 when there are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
