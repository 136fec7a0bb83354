package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recruiting-bot/internal/session"
	"recruiting-bot/internal/storage"
	"recruiting-bot/internal/telegram"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const birthDateLayout = "02.01.2006"

// Sender описывает исходящие операции чата, нужные анкете
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithMarkup(chatID int64, text string, markup interface{}) error
	AnswerCallbackQuery(callbackID, text string, showAlert bool) error
	EditMessageReplyMarkup(chatID int64, messageID int, markup *telegram.InlineKeyboardMarkup) error
	GetFileURL(fileID string) (string, error)
}

// Store описывает операции хранилища, нужные анкете
type Store interface {
	ConsumeAllowance(phoneNumber string) error
	Regions() ([]storage.Region, error)
	RegionByID(id uint) (*storage.Region, error)
	Specializations() ([]storage.Specialization, error)
	CreateProfile(profile *storage.Profile, specializationIDs []uint) error
}

// CompletedForm возвращается, когда анкета полностью собрана и сохранена
type CompletedForm struct {
	ProfileID         string
	SpecializationIDs []uint
}

// Controller представляет машину состояний анкеты
type Controller struct {
	sessions *session.Store[FormState]
	store    Store
	sender   Sender
	log      *zap.Logger
}

// NewController создает новый контроллер анкеты
func NewController(sessions *session.Store[FormState], store Store, sender Sender, log *zap.Logger) *Controller {
	return &Controller{
		sessions: sessions,
		store:    store,
		sender:   sender,
		log:      log,
	}
}

// Start начинает новую анкету, сбрасывая предыдущее состояние
func (c *Controller) Start(userID, chatID int64) error {
	c.sessions.Set(userID, FormState{State: StateAwaitPhone})
	return c.sender.SendMessageWithMarkup(chatID,
		"👨‍💼Добро пожаловать! Пожалуйста, укажите свой номер телефона:",
		phoneRequestBoard())
}

// Active сообщает, заполняет ли пользователь анкету
func (c *Controller) Active(userID int64) bool {
	state, ok := c.sessions.Get(userID)
	return ok && state.State != StateComplete
}

// Handle обрабатывает одно событие анкеты.
// Событие неподходящего типа не двигает состояние: пользователю
// повторяется подсказка текущего шага.
// Ненулевой CompletedForm означает, что анкета собрана и сохранена.
func (c *Controller) Handle(userID, chatID int64, ev Event) (*CompletedForm, error) {
	state, ok := c.sessions.Get(userID)
	if !ok {
		return nil, c.sender.SendMessage(chatID,
			"Анкета не начата или истекла. Отправьте /start, чтобы начать заново.")
	}

	c.log.Debug("событие анкеты",
		zap.Int64("user_id", userID),
		zap.String("state", state.State.String()),
		zap.Int("event_kind", int(ev.Kind)))

	switch state.State {
	case StateAwaitPhone:
		return nil, c.handlePhone(userID, chatID, state, ev)
	case StateAwaitName:
		return nil, c.handleName(userID, chatID, state, ev)
	case StateAwaitBirthDate:
		return nil, c.handleBirthDate(userID, chatID, state, ev)
	case StateAwaitRegion:
		return nil, c.handleRegion(userID, chatID, state, ev)
	case StateAwaitGender:
		return nil, c.handleGender(userID, chatID, state, ev)
	case StateAwaitCV:
		return nil, c.handleCV(userID, chatID, state, ev)
	case StateAwaitCategories:
		return c.handleCategories(userID, chatID, state, ev)
	default:
		return nil, c.sender.SendMessage(chatID, "Отправьте /start, чтобы начать заново.")
	}
}

func (c *Controller) handlePhone(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventContact {
		return c.sender.SendMessageWithMarkup(chatID,
			"👨‍💼Пожалуйста, отправьте свой номер телефона кнопкой ниже:",
			phoneRequestBoard())
	}

	phone := strings.Join(strings.Fields(ev.PhoneNumber), "")

	err := c.store.ConsumeAllowance(phone)
	if errors.Is(err, storage.ErrNoAllowance) {
		c.sessions.Delete(userID)
		return c.sender.SendMessage(chatID,
			"👨‍💼К сожалению, вы не можете пройти тестирование. Пожалуйста, обратитесь к администратору.")
	}
	if err != nil {
		return err
	}

	state.PhoneNumber = phone
	state.State = StateAwaitName
	c.sessions.Set(userID, state)

	return c.sender.SendMessage(chatID, "👨‍💼Спасибо! Пожалуйста введите свое полное имя:")
}

func (c *Controller) handleName(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventText || strings.TrimSpace(ev.Text) == "" {
		return c.sender.SendMessage(chatID, "👨‍💼Пожалуйста введите свое полное имя:")
	}

	state.FullName = ev.Text
	state.State = StateAwaitBirthDate
	c.sessions.Set(userID, state)

	return c.sender.SendMessage(chatID, "👨‍💼Спасибо! Пожалуйста введите свою дату рождения (dd.mm.yyyy):")
}

func (c *Controller) handleBirthDate(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventText {
		return c.sender.SendMessage(chatID, "👨‍💼Пожалуйста введите свою дату рождения (dd.mm.yyyy):")
	}

	birthDate, err := time.Parse(birthDateLayout, strings.TrimSpace(ev.Text))
	if err != nil {
		return c.sender.SendMessage(chatID,
			"👨‍💼Неверный формат даты. Пожалуйста введите дату рождения в формате dd.mm.yyyy:")
	}

	state.BirthDate = birthDate
	state.State = StateAwaitRegion
	c.sessions.Set(userID, state)

	regions, err := c.store.Regions()
	if err != nil {
		return err
	}

	return c.sender.SendMessageWithMarkup(chatID,
		"👨‍💼Спасибо! Пожалуйста введите свой регион:", regionsBoard(regions))
}

func (c *Controller) handleRegion(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventCallback {
		return c.sender.SendMessage(chatID, "👨‍💼Пожалуйста, выберите регион кнопкой на клавиатуре выше.")
	}

	regionID, err := strconv.ParseUint(ev.CallbackData, 10, 64)
	if err != nil {
		return c.sender.AnswerCallbackQuery(ev.CallbackID, "Неизвестный регион", true)
	}

	region, err := c.store.RegionByID(uint(regionID))
	if err != nil {
		return c.sender.AnswerCallbackQuery(ev.CallbackID, "Неизвестный регион", true)
	}

	// Убираем клавиатуру, чтобы регион нельзя было выбрать повторно
	if err := c.sender.EditMessageReplyMarkup(chatID, ev.MessageID, nil); err != nil {
		return err
	}
	if err := c.sender.AnswerCallbackQuery(ev.CallbackID, "", false); err != nil {
		return err
	}

	state.RegionID = uint(regionID)
	state.State = StateAwaitGender
	c.sessions.Set(userID, state)

	if err := c.sender.SendMessage(chatID, fmt.Sprintf("Выбран регион: %s", region.Name)); err != nil {
		return err
	}
	return c.sender.SendMessageWithMarkup(chatID,
		"👨‍💼Спасибо! Пожалуйста введите свой пол:", genderBoard())
}

func (c *Controller) handleGender(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventText || (ev.Text != genderMale && ev.Text != genderFemale) {
		return c.sender.SendMessageWithMarkup(chatID,
			"👨‍💼Пожалуйста введите свой пол:", genderBoard())
	}

	if ev.Text == genderMale {
		state.Gender = "male"
	} else {
		state.Gender = "female"
	}
	state.State = StateAwaitCV
	c.sessions.Set(userID, state)

	return c.sender.SendMessage(chatID, "👨‍💼Спасибо! Пожалуйста отправьте свое резюме:")
}

func (c *Controller) handleCV(userID, chatID int64, state FormState, ev Event) error {
	if ev.Kind != EventDocument || ev.FileID == "" {
		return c.sender.SendMessage(chatID, "👨‍💼Пожалуйста отправьте свое резюме файлом или фотографией:")
	}

	state.CVFileID = ev.FileID
	state.State = StateAwaitCategories
	c.sessions.Set(userID, state)

	specs, err := c.store.Specializations()
	if err != nil {
		return err
	}

	return c.sender.SendMessageWithMarkup(chatID,
		"👨‍💼Спасибо! Пожалуйста выберите категории, в которых вы хотите работать:",
		categoriesBoard(specs, nil))
}

func (c *Controller) handleCategories(userID, chatID int64, state FormState, ev Event) (*CompletedForm, error) {
	if ev.Kind != EventCallback {
		return nil, c.sender.SendMessage(chatID,
			"👨‍💼Пожалуйста, выберите категории кнопками на клавиатуре выше.")
	}

	if ev.CallbackData != saveCallback {
		return nil, c.toggleCategory(userID, chatID, state, ev)
	}

	// Сохранение без единого выбора отклоняется, шаг повторяется
	if len(state.Categories) == 0 {
		return nil, c.sender.AnswerCallbackQuery(ev.CallbackID, "Выберите хотя бы одну категорию", true)
	}

	if err := c.sender.AnswerCallbackQuery(ev.CallbackID, "", false); err != nil {
		return nil, err
	}

	completed, err := c.completeForm(userID, state)
	if err != nil {
		return nil, err
	}

	return completed, c.sender.SendMessage(chatID,
		"📝Спасибо! Ваша информация сохранена.\n🔄Генерация вопросов...")
}

func (c *Controller) toggleCategory(userID, chatID int64, state FormState, ev Event) error {
	specID, err := strconv.ParseUint(ev.CallbackData, 10, 64)
	if err != nil {
		return c.sender.AnswerCallbackQuery(ev.CallbackID, "Неизвестная категория", true)
	}

	id := uint(specID)
	if containsID(state.Categories, id) {
		filtered := make([]uint, 0, len(state.Categories))
		for _, v := range state.Categories {
			if v != id {
				filtered = append(filtered, v)
			}
		}
		state.Categories = filtered
	} else {
		state.Categories = append(state.Categories, id)
	}
	c.sessions.Set(userID, state)

	specs, err := c.store.Specializations()
	if err != nil {
		return err
	}

	if err := c.sender.EditMessageReplyMarkup(chatID, ev.MessageID, categoriesBoard(specs, state.Categories)); err != nil {
		return err
	}
	return c.sender.AnswerCallbackQuery(ev.CallbackID, "", false)
}

// completeForm превращает накопленную анкету в постоянную запись
func (c *Controller) completeForm(userID int64, state FormState) (*CompletedForm, error) {
	cvURL, err := c.sender.GetFileURL(state.CVFileID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения ссылки на резюме: %w", err)
	}

	profile := &storage.Profile{
		ID:             uuid.New().String(),
		TelegramUserID: userID,
		FullName:       state.FullName,
		PhoneNumber:    state.PhoneNumber,
		BirthDate:      state.BirthDate,
		Gender:         state.Gender,
		RegionID:       state.RegionID,
		CVURL:          cvURL,
	}

	if err := c.store.CreateProfile(profile, state.Categories); err != nil {
		return nil, err
	}

	state.State = StateComplete
	c.sessions.Set(userID, state)

	c.log.Info("анкета сохранена",
		zap.Int64("user_id", userID),
		zap.String("profile_id", profile.ID))

	return &CompletedForm{
		ProfileID:         profile.ID,
		SpecializationIDs: state.Categories,
	}, nil
}
