package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"recruiting-bot/internal/assessment"
	"recruiting-bot/internal/flow"
	"recruiting-bot/internal/metrics"
	"recruiting-bot/internal/storage"
	"recruiting-bot/internal/telegram"

	"go.uber.org/zap"
)

const apologyMessage = "😔 Что-то пошло не так. Пожалуйста, попробуйте еще раз."

// Messenger описывает исходящие операции чата, нужные диспетчеру
type Messenger interface {
	SendMessage(chatID int64, text string) error
	AnswerCallbackQuery(callbackID, text string, showAlert bool) error
	SendDocument(chatID int64, filePath, caption string) error
}

// Store описывает операции хранилища, нужные диспетчеру
type Store interface {
	EnsureUser(userID int64, username string) error
	ProfileByID(id string) (*storage.Profile, error)
	SetReportPath(profileID, path string) error
}

// Renderer формирует файл отчета по заполненной анкете
type Renderer interface {
	Render(profile *storage.Profile) (string, error)
}

// Handler направляет входящие обновления в анкету или тестирование
type Handler struct {
	bot      Messenger
	form     *flow.Controller
	engine   *assessment.Engine
	analyzer *assessment.Analyzer
	store    Store
	renderer Renderer
	metrics  *metrics.Metrics
	log      *zap.Logger

	rateLimiter *RateLimiter

	// События одного пользователя обрабатываются строго по очереди
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewHandler создает новый обработчик обновлений
func NewHandler(bot Messenger, form *flow.Controller, engine *assessment.Engine, analyzer *assessment.Analyzer, store Store, renderer Renderer, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{
		bot:         bot,
		form:        form,
		engine:      engine,
		analyzer:    analyzer,
		store:       store,
		renderer:    renderer,
		metrics:     m,
		log:         log,
		rateLimiter: NewRateLimiter(10, time.Minute),
		locks:       make(map[int64]*sync.Mutex),
	}
}

// HandleUpdate обрабатывает одно обновление от Telegram
func (h *Handler) HandleUpdate(update telegram.Update) {
	userID, chatID, ok := identify(update)
	if !ok {
		return
	}

	// Ответы внутри раунда не ограничиваются, чтобы кандидат мог
	// быстро пройти все вопросы подряд
	if !h.engine.Active(userID) && !h.rateLimiter.IsAllowed(userID) {
		h.bot.SendMessage(chatID, "⏳ Слишком много сообщений. Пожалуйста, подождите минуту.")
		return
	}

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := h.store.EnsureUser(userID, username(update)); err != nil {
		h.log.Error("ошибка регистрации пользователя", zap.Int64("user_id", userID), zap.Error(err))
	}

	if update.Message != nil && strings.HasPrefix(update.Message.Text, "/") {
		h.handleCommand(userID, chatID, strings.TrimSpace(update.Message.Text))
		return
	}

	ctx := context.Background()

	if h.engine.Active(userID) {
		h.handleQuizAnswer(ctx, userID, chatID, update)
		return
	}

	if !h.form.Active(userID) {
		h.bot.SendMessage(chatID, "Анкета не начата или истекла. Отправьте /start, чтобы начать заново.")
		return
	}

	h.handleFormEvent(ctx, userID, chatID, update)
}

func (h *Handler) handleCommand(userID, chatID int64, command string) {
	switch command {
	case "/start":
		h.engine.Abort(userID)
		h.metrics.IncrementFlowsStarted()
		if err := h.form.Start(userID, chatID); err != nil {
			h.log.Error("ошибка старта анкеты", zap.Int64("user_id", userID), zap.Error(err))
		}
	case "/stats":
		h.bot.SendMessage(chatID, formatStats(h.metrics.GetSnapshot()))
	default:
		h.bot.SendMessage(chatID, "Неизвестная команда. Отправьте /start, чтобы начать.")
	}
}

func (h *Handler) handleFormEvent(ctx context.Context, userID, chatID int64, update telegram.Update) {
	completed, err := h.form.Handle(userID, chatID, toFlowEvent(update))
	if err != nil {
		h.log.Error("ошибка шага анкеты", zap.Int64("user_id", userID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}
	if completed == nil {
		return
	}

	// Анкета собрана: начинаем первый раунд вопросов
	question, err := h.engine.Begin(ctx, userID, completed.ProfileID, completed.SpecializationIDs)
	if err != nil {
		h.log.Error("ошибка генерации вопросов", zap.Int64("user_id", userID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	h.metrics.IncrementQuestionsAsked()
	h.bot.SendMessage(chatID, question)
}

func (h *Handler) handleQuizAnswer(ctx context.Context, userID, chatID int64, update telegram.Update) {
	if update.Message == nil || update.Message.Text == "" {
		if update.CallbackQuery != nil {
			h.bot.AnswerCallbackQuery(update.CallbackQuery.ID, "", false)
		}
		h.bot.SendMessage(chatID, "Пожалуйста, ответьте на вопрос текстовым сообщением.")
		return
	}

	action, err := h.engine.SubmitAnswer(ctx, userID, update.Message.Text)
	switch {
	case errors.Is(err, assessment.ErrAnswerTooLong):
		h.bot.SendMessage(chatID, "Слишком длинный ответ. Пожалуйста, ответьте на вопрос в одном сообщении.")
		return
	case errors.Is(err, assessment.ErrNoSession):
		h.bot.SendMessage(chatID, "Сессия тестирования истекла. Отправьте /start, чтобы начать заново.")
		return
	case err != nil:
		h.log.Error("ошибка обработки ответа", zap.Int64("user_id", userID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	h.metrics.IncrementAnswersAccepted()

	switch action.Kind {
	case assessment.ActionAdvance:
		h.metrics.IncrementQuestionsAsked()
		h.bot.SendMessage(chatID, action.NextQuestion)
	case assessment.ActionNextCategory:
		h.metrics.IncrementQuestionsAsked()
		h.bot.SendMessage(chatID, "🔄Следующий раунд: "+action.Category.Title())
		h.bot.SendMessage(chatID, action.NextQuestion)
	case assessment.ActionComplete:
		h.completeAssessment(ctx, userID, chatID, action.ProfileID)
	}
}

// completeAssessment выполняет анализ ответов и отправляет готовый отчет
func (h *Handler) completeAssessment(ctx context.Context, userID, chatID int64, profileID string) {
	h.bot.SendMessage(chatID, "📝Спасибо! Ваши ответы сохранены.")
	h.bot.SendMessage(chatID, "🔄Подготовка резюме...")

	if _, err := h.analyzer.Analyze(ctx, profileID); err != nil {
		h.log.Error("ошибка анализа ответов", zap.String("profile_id", profileID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	profile, err := h.store.ProfileByID(profileID)
	if err != nil {
		h.log.Error("ошибка загрузки анкеты", zap.String("profile_id", profileID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	path, err := h.renderer.Render(profile)
	if err != nil {
		h.log.Error("ошибка рендеринга отчета", zap.String("profile_id", profileID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	if err := h.store.SetReportPath(profileID, path); err != nil {
		h.log.Error("ошибка сохранения пути отчета", zap.String("profile_id", profileID), zap.Error(err))
	}

	if err := h.bot.SendDocument(chatID, path, "📄Ваше резюме готово!"); err != nil {
		h.log.Error("ошибка отправки отчета", zap.String("profile_id", profileID), zap.Error(err))
		h.bot.SendMessage(chatID, apologyMessage)
		return
	}

	h.metrics.IncrementFlowsCompleted()
	h.metrics.IncrementReportsGenerated()

	h.log.Info("поток завершен",
		zap.Int64("user_id", userID),
		zap.String("profile_id", profileID))
}

func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.locksMu.Lock()
	defer h.locksMu.Unlock()

	lock, ok := h.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[userID] = lock
	}
	return lock
}

// formatStats печатает счетчики для команды /stats
func formatStats(s metrics.Metrics) string {
	return fmt.Sprintf(
		"📊 Статистика:\n"+
			"Анкет начато: %d\n"+
			"Анкет завершено: %d\n"+
			"Вопросов задано: %d\n"+
			"Ответов принято: %d\n"+
			"Отчетов сформировано: %d\n"+
			"Вызовов API: %d (ошибок: %d)",
		s.FlowsStarted, s.FlowsCompleted, s.QuestionsAsked,
		s.AnswersAccepted, s.ReportsGenerated,
		s.APICallsTotal, s.APICallsFailed)
}

// identify извлекает идентификаторы пользователя и чата из обновления
func identify(update telegram.Update) (userID, chatID int64, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil && update.Message.Chat != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil &&
		update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.From.ID, update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, 0, false
	}
}

func username(update telegram.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.Username
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.Username
	}
	return ""
}

// toFlowEvent превращает обновление Telegram в типизированное событие анкеты
func toFlowEvent(update telegram.Update) flow.Event {
	if cb := update.CallbackQuery; cb != nil {
		ev := flow.Event{
			Kind:         flow.EventCallback,
			CallbackID:   cb.ID,
			CallbackData: cb.Data,
		}
		if cb.Message != nil {
			ev.MessageID = cb.Message.MessageID
		}
		return ev
	}

	msg := update.Message
	switch {
	case msg.Contact != nil:
		return flow.Event{Kind: flow.EventContact, PhoneNumber: msg.Contact.PhoneNumber}
	case msg.Document != nil:
		return flow.Event{Kind: flow.EventDocument, FileID: msg.Document.FileID}
	case len(msg.Photo) > 0:
		// Telegram присылает несколько размеров, берем самый крупный
		return flow.Event{Kind: flow.EventDocument, FileID: msg.Photo[len(msg.Photo)-1].FileID}
	default:
		return flow.Event{Kind: flow.EventText, Text: msg.Text}
	}
}
