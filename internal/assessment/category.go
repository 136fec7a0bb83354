package assessment

// Category представляет тип раунда тестирования
type Category int

const (
	CategoryAptitude Category = iota
	CategoryInterpersonal
	CategoryTechnical
)

// String возвращает тег категории, под которым ответы хранятся в базе
func (c Category) String() string {
	switch c {
	case CategoryAptitude:
		return "iq_test"
	case CategoryInterpersonal:
		return "soft_skill"
	case CategoryTechnical:
		return "professional_test"
	default:
		return "unknown"
	}
}

// Title возвращает человекочитаемое название категории
func (c Category) Title() string {
	switch c {
	case CategoryAptitude:
		return "IQ тест"
	case CategoryInterpersonal:
		return "Софт-скиллы"
	case CategoryTechnical:
		return "Технические навыки"
	default:
		return "Неизвестно"
	}
}

// Next возвращает следующую категорию тестирования.
// Порядок фиксированный: IQ → софт-скиллы → технические навыки.
func (c Category) Next() (Category, bool) {
	switch c {
	case CategoryAptitude:
		return CategoryInterpersonal, true
	case CategoryInterpersonal:
		return CategoryTechnical, true
	default:
		return c, false
	}
}
