package flow

import "time"

// State представляет шаг анкеты
type State int

const (
	StateStart State = iota
	StateAwaitPhone
	StateAwaitName
	StateAwaitBirthDate
	StateAwaitRegion
	StateAwaitGender
	StateAwaitCV
	StateAwaitCategories
	StateComplete
)

// String возвращает имя состояния для логов
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAwaitPhone:
		return "await_phone"
	case StateAwaitName:
		return "await_name"
	case StateAwaitBirthDate:
		return "await_birth_date"
	case StateAwaitRegion:
		return "await_region"
	case StateAwaitGender:
		return "await_gender"
	case StateAwaitCV:
		return "await_cv"
	case StateAwaitCategories:
		return "await_categories"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// FormState представляет накопленные данные анкеты.
// Поле заполнено только после того, как его шаг успешно пройден.
type FormState struct {
	State       State
	PhoneNumber string
	FullName    string
	BirthDate   time.Time
	RegionID    uint
	Gender      string
	CVFileID    string
	Categories  []uint
}

// EventKind определяет тип входящего события
type EventKind int

const (
	EventText EventKind = iota
	EventContact
	EventDocument
	EventCallback
)

// Event представляет типизированное входящее событие от чата
type Event struct {
	Kind         EventKind
	Text         string
	PhoneNumber  string
	FileID       string
	CallbackID   string
	CallbackData string
	MessageID    int
}
