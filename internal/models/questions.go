package models

// SurveyQuestions is the canonical question list. Immutable for the
// lifetime of the process; slice order is the display order.
var SurveyQuestions = []Question{
	{
		ID: "q1",
		Text: map[Language]string{
			LangUz: "Maktab hududida o'zingizni xavfsiz va xotirjam his qilasizmi?",
			LangRu: "Чувствуете ли вы себя в безопасности и спокойно на территории школы?",
		},
	},
	{
		ID: "q2",
		Text: map[Language]string{
			LangUz: "Tengdoshlaringiz tomonidan kamsitish yoki nohaq munosabatga duch kelasizmi?",
			LangRu: "Сталкиваетесь ли вы с дискриминацией или несправедливым отношением со стороны сверстников?",
		},
	},
	{
		ID: "q3",
		Text: map[Language]string{
			LangUz: "O'zingizga yoqmagan bo'lsa-da, guruh qoidalariga bo'ysunishga majbur bo'lasizmi?",
			LangRu: "Приходится ли вам подчиняться правилам группы, даже если они вам не нравятся?",
		},
	},
	{
		ID: "q4",
		Text: map[Language]string{
			LangUz: "Sog'lig'ingiz uchun zararli bo'lgan tutunli yoki bug'li vositalardan foydalanishga qiziqasizmi?",
			LangRu: "Интересуетесь ли вы использованием дымных или паровых средств, вредных для вашего здоровья?",
		},
	},
	{
		ID: "q5",
		Text: map[Language]string{
			LangUz: "Kayfiyatni sun'iy tarzda o'zgartiruvchi \"maxsus\" ichimliklarni tatib ko'rish takliflari bo'ladimi?",
			LangRu: "Бывают ли предложения попробовать \"особые\" напитки, искусственно меняющие настроение?",
		},
	},
	{
		ID: "q6",
		Text: map[Language]string{
			LangUz: "Kattalar yoki tartib-qoidalarga qarshi chiqish orqali o'zingizni ko'rsatishni yoqtirasizmi?",
			LangRu: "Нравится ли вам проявлять себя, идя против взрослых или установленных правил?",
		},
	},
	{
		ID: "q7",
		Text: map[Language]string{
			LangUz: "Sizni jamoat tadbirlaridan yoki guruh suhbatlaridan ataylab chetlatishadimi?",
			LangRu: "Вас специально исключают из общественных мероприятий или групповых бесед?",
		},
	},
	{
		ID: "q8",
		Text: map[Language]string{
			LangUz: "Darslardan sababsiz qolish yoki intizomni buzish holatlari sizda kuzatiladimi?",
			LangRu: "Наблюдаются ли у вас случаи прогулов уроков без причины или нарушения дисциплины?",
		},
	},
	{
		ID: "q9",
		Text: map[Language]string{
			LangUz: "Atrofingizdagilar sizni xavfli yoki tavakkalchilikka asoslangan ishlarga undashadimi?",
			LangRu: "Побуждают ли окружающие вас к опасным или рискованным поступкам?",
		},
	},
	{
		ID: "q10",
		Text: map[Language]string{
			LangUz: "Internet tarmoqlarida sizga nisbatan bosim yoki haqoratlar bo'ladimi?",
			LangRu: "Бывают ли в отношении вас давление или оскорбления в интернет-сетях?",
		},
	},
}

// ResponseLabels are the five Likert answer labels, indexed by score 0..4.
var ResponseLabels = map[Language][]string{
	LangUz: {"Hech qachon", "Kamdan-kam", "Ba'zida", "Tez-tez", "Har doim"},
	LangRu: {"Никогда", "Редко", "Иногда", "Часто", "Всегда"},
}

// MinScore and MaxScore bound a valid answer value.
const (
	MinScore = 0
	MaxScore = 4
)

// QuestionByID returns the question with the given id, or nil.
func QuestionByID(id string) *Question {
	for i := range SurveyQuestions {
		if SurveyQuestions[i].ID == id {
			return &SurveyQuestions[i]
		}
	}
	return nil
}

// TextIn returns the localized stem, falling back to Uzbek.
func (q *Question) TextIn(lang Language) string {
	if s := q.Text[lang]; s != "" {
		return s
	}
	return q.Text[LangUz]
}

// AnswerLabel returns the localized label for a score, or empty when the
// score is outside [0,4].
func AnswerLabel(lang Language, score int) string {
	labels, ok := ResponseLabels[lang]
	if !ok {
		labels = ResponseLabels[LangUz]
	}
	if score < MinScore || score > MaxScore {
		return ""
	}
	return labels[score]
}
