package utils

// Server-side uz/ru message catalog for fixed keys. Form labels live in
// the frontend; the server only speaks where it must (validation,
// collaborator failures, canned report messages).

var translations = map[string]map[string]string{
	"uz": {
		"health.ok":              "ishlayapti",
		"submit.thanks":          "Rahmat! Ma'lumotlaringiz muvaffaqiyatli saqlandi.",
		"submit.incomplete":      "Iltimos, barcha savollarga javob bering.",
		"submit.invalid_score":   "Javob qiymati noto'g'ri.",
		"submit.registration":    "Iltimos, ro'yxatdan o'tish maydonlarini to'ldiring.",
		"submit.failed":          "Ma'lumotlarni saqlashda xatolik yuz berdi.",
		"report.no_data":         "Tahlil qilish uchun ma'lumotlar mavjud emas.",
		"report.failed":          "AI tahlili jarayonida texnik xatolik yuz berdi",
		"report.busy":            "Tahlil allaqachon bajarilmoqda. Iltimos, kuting.",
		"report.empty":           "AI javob qaytarmadi.",
		"admin.wrong_password":   "Xato parol!",
		"admin.confirm_required": "O'chirishni tasdiqlash talab qilinadi.",
		"response.not_found":     "So'rovnoma topilmadi.",
		"store.failed":           "Ma'lumotlar omboriga ulanishda xatolik",
	},
	"ru": {
		"health.ok":              "работает",
		"submit.thanks":          "Спасибо! Ваши данные успешно сохранены.",
		"submit.incomplete":      "Пожалуйста, ответьте на все вопросы.",
		"submit.invalid_score":   "Недопустимое значение ответа.",
		"submit.registration":    "Пожалуйста, заполните поля регистрации.",
		"submit.failed":          "Произошла ошибка при сохранении данных.",
		"report.no_data":         "Нет данных для анализа.",
		"report.failed":          "Техническая ошибка при выполнении AI анализа",
		"report.busy":            "Анализ уже выполняется. Пожалуйста, подождите.",
		"report.empty":           "AI не вернул ответ.",
		"admin.wrong_password":   "Неверный пароль!",
		"admin.confirm_required": "Требуется подтверждение удаления.",
		"response.not_found":     "Анкета не найдена.",
		"store.failed":           "Ошибка подключения к хранилищу данных",
	},
}

// T returns the translated string for key in locale; falls back to Uzbek.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["uz"][key]; ok {
		return v
	}
	return key
}
