package tgapi

import (
	"strconv"
	"strings"

	"foros-bot/internal/domain"
)

type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentMainMenu
	IntentSelectCategory
	IntentSelectKitchen
	IntentTopStaff
	IntentShowCategory
	IntentShowStaff
	IntentStaffReviews
	IntentWorkshopReviews
	IntentStartStaffReview
	IntentStartWorkshopReview
	IntentRate
	IntentTipQR
)

// Intent is a button token parsed once at the transport boundary; handlers
// dispatch on the kind, never on the raw string.
type Intent struct {
	Kind     IntentKind
	Category domain.Category
	StaffID  string
	Rating   int
}

const (
	tokenMainMenu       = "main_menu"
	tokenSelectCategory = "select_category"
	tokenSelectKitchen  = "select_kitchen"
	tokenTopStaff       = "top_staff"

	prefixReviewsWorkshop = "reviews_workshop_"
	prefixReviewWorkshop  = "review_workshop_"
	prefixReviews         = "reviews_"
	prefixReview          = "review_"
	prefixStaff           = "staff_"
	prefixTip             = "tip_"
	prefixCategory        = "category_"
	prefixRate            = "rate_"
)

func categoryToken(c domain.Category) string { return prefixCategory + string(c) }
func staffToken(c domain.Category, id string) string {
	return prefixStaff + string(c) + "_" + id
}
func reviewsToken(c domain.Category, id string) string {
	return prefixReviews + string(c) + "_" + id
}
func reviewToken(c domain.Category, id string) string {
	return prefixReview + string(c) + "_" + id
}
func workshopReviewsToken(c domain.Category) string { return prefixReviewsWorkshop + string(c) }
func workshopReviewToken(c domain.Category) string  { return prefixReviewWorkshop + string(c) }
func tipToken(c domain.Category, id string) string {
	return prefixTip + string(c) + "_" + id
}
func rateToken(rating int) string { return prefixRate + strconv.Itoa(rating) }

func ParseIntent(data string) Intent {
	switch data {
	case tokenMainMenu:
		return Intent{Kind: IntentMainMenu}
	case tokenSelectCategory:
		return Intent{Kind: IntentSelectCategory}
	case tokenSelectKitchen:
		return Intent{Kind: IntentSelectKitchen}
	case tokenTopStaff:
		return Intent{Kind: IntentTopStaff}
	}

	// Prefix order matters: "reviews_" also matches "review_", and the
	// workshop forms also match the staff forms.
	switch {
	case strings.HasPrefix(data, prefixReviewsWorkshop):
		return categoryIntent(IntentWorkshopReviews, strings.TrimPrefix(data, prefixReviewsWorkshop))
	case strings.HasPrefix(data, prefixReviewWorkshop):
		return categoryIntent(IntentStartWorkshopReview, strings.TrimPrefix(data, prefixReviewWorkshop))
	case strings.HasPrefix(data, prefixReviews):
		return staffIntent(IntentStaffReviews, strings.TrimPrefix(data, prefixReviews))
	case strings.HasPrefix(data, prefixReview):
		return staffIntent(IntentStartStaffReview, strings.TrimPrefix(data, prefixReview))
	case strings.HasPrefix(data, prefixStaff):
		return staffIntent(IntentShowStaff, strings.TrimPrefix(data, prefixStaff))
	case strings.HasPrefix(data, prefixTip):
		return staffIntent(IntentTipQR, strings.TrimPrefix(data, prefixTip))
	case strings.HasPrefix(data, prefixCategory):
		return categoryIntent(IntentShowCategory, strings.TrimPrefix(data, prefixCategory))
	case strings.HasPrefix(data, prefixRate):
		rating, err := strconv.Atoi(strings.TrimPrefix(data, prefixRate))
		if err != nil || rating < 1 || rating > 5 {
			return Intent{}
		}
		return Intent{Kind: IntentRate, Rating: rating}
	}
	return Intent{}
}

func categoryIntent(kind IntentKind, raw string) Intent {
	category := domain.Category(raw)
	if !category.Valid() {
		return Intent{}
	}
	return Intent{Kind: kind, Category: category}
}

// staffIntent splits "<category>_<staff_id>" on the last underscore:
// category names themselves contain underscores, staff ids do not.
func staffIntent(kind IntentKind, raw string) Intent {
	i := strings.LastIndex(raw, "_")
	if i <= 0 || i == len(raw)-1 {
		return Intent{}
	}
	category := domain.Category(raw[:i])
	if !category.Valid() {
		return Intent{}
	}
	return Intent{Kind: kind, Category: category, StaffID: raw[i+1:]}
}
