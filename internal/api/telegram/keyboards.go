package tgapi

import (
	"strconv"

	"foros-bot/internal/domain"
)

type Button struct {
	Text string
	Data string
}

// Keyboard is a transport-neutral inline keyboard: rows of buttons carrying
// callback tokens.
type Keyboard [][]Button

func mainMenuKeyboard() Keyboard {
	return Keyboard{
		{{Text: "👥 Выбрать категорию", Data: tokenSelectCategory}},
		{{Text: "🏆 Топ сотрудников", Data: tokenTopStaff}},
	}
}

func categoryKeyboard() Keyboard {
	return Keyboard{
		{{Text: "🤵 Официанты", Data: categoryToken(domain.CategoryWaiters)}},
		{{Text: "👨‍🍳 Кухня", Data: tokenSelectKitchen}},
		{{Text: "🍸 Бар", Data: categoryToken(domain.CategoryBartenders)}},
		{{Text: backLabel, Data: tokenMainMenu}},
	}
}

func kitchenKeyboard() Keyboard {
	var kb Keyboard
	for _, c := range domain.KitchenCategories {
		kb = append(kb, []Button{{Text: c.Label(), Data: categoryToken(c)}})
	}
	kb = append(kb, []Button{{Text: backLabel, Data: tokenSelectCategory}})
	return kb
}

func staffListKeyboard(category domain.Category, entries []domain.StaffEntry) Keyboard {
	var kb Keyboard
	for _, entry := range entries {
		kb = append(kb, []Button{{Text: entry.Staff.Name, Data: staffToken(category, entry.ID)}})
	}
	kb = append(kb, []Button{{Text: backLabel, Data: tokenSelectCategory}})
	return kb
}

func staffActionsKeyboard(category domain.Category, id string, hasPaymentRef bool) Keyboard {
	kb := Keyboard{
		{{Text: "⭐ Отзывы", Data: reviewsToken(category, id)}},
		{{Text: "📝 Оставить отзыв", Data: reviewToken(category, id)}},
	}
	if hasPaymentRef {
		kb = append(kb, []Button{{Text: "💳 QR для чаевых", Data: tipToken(category, id)}})
	}
	kb = append(kb, []Button{{Text: backLabel, Data: categoryToken(category)}})
	return kb
}

func workshopKeyboard(category domain.Category) Keyboard {
	return Keyboard{
		{{Text: "⭐ Отзывы", Data: workshopReviewsToken(category)}},
		{{Text: "📝 Оставить отзыв", Data: workshopReviewToken(category)}},
		{{Text: backLabel, Data: tokenSelectKitchen}},
	}
}

func ratingKeyboard() Keyboard {
	row := make([]Button, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		row = append(row, Button{Text: strconv.Itoa(rating) + " ⭐", Data: rateToken(rating)})
	}
	return Keyboard{row}
}

func backKeyboard(data string) Keyboard {
	return Keyboard{{{Text: backLabel, Data: data}}}
}
