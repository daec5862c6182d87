package tgapi

// Guest-facing texts are hard-coded, as the restaurant runs in one language.
const (
	startButtonLabel = "🚀 START"
	backLabel        = "↩️ Назад"

	welcomeText = "🍇 Добро пожаловать в бот ресторана «Форос»! 🍷 \n\n" +
		"Спасибо, что заглянули!\n" +
		"Здесь вы можете сделать две простые, но очень важные для нас вещи:\n\n" +
		"1️⃣ Оставить отзыв о вашем посещении — поделитесь впечатлениями о кухне, " +
		"обслуживании и атмосфере. Это поможет другим гостям и нам самим становиться лучше.\n\n" +
		"2️⃣ Поддержать нашу команду чаевыми, если у вас остались тёплые эмоции после визита!"

	startMenuText = "📋 Главное меню\n\n" +
		"Здесь вы можете поделиться своим мнением о визите в ресторан «Форос». Выберите действие:\n\n" +
		"⭐ Топ сотрудников\n\n" +
		"Посмотрите рейтинг наших коллег, отмеченных в отзывах гостей. " +
		"Узнайте, кто создаёт самые тёплые впечатления!\n\n" +
		"📝 Оставить отзыв или поддержать нашу команду\n" +
		"Выберите категорию, чтобы ваша благодарность или совет попали точно адресату:"

	mainMenuText     = "📋 Главное меню\n\nВыберите действие:"
	pickCategoryText = "Выберите категорию чтобы оставить отзыв 🗨️ или оставить на чай ☕:"
	pickKitchenText  = "Выберите цех кухни:"
	pickStaffText    = "Выберите сотрудника:"

	askStaffRatingText    = "Выберите оценку:"
	askWorkshopRatingText = "Оцените цех:"
	askReviewTextText     = "Напишите отзыв:"
	nonTextReplyText      = "Напишите отзыв текстом 🙏"

	reviewSavedText = "✅ Отзыв сохранён!\n\nНажмите 🚀 START, чтобы оставить отзыв или оставить на чай!"

	cooldownStaffText    = "❌ Вы уже оставляли отзыв этому сотруднику сегодня"
	cooldownWorkshopText = "❌ Вы уже оставляли отзыв этому цеху сегодня"

	noReviewsText = "Пока нет отзывов."
	noTopText     = "Пока нет сотрудников с достаточным количеством отзывов 😔"
	fallbackText  = "Нажмите 🚀 START для начала работы"
)
