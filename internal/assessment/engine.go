package assessment

import (
	"context"
	"errors"
	"fmt"

	"recruiting-bot/internal/session"
	"recruiting-bot/internal/storage"

	"go.uber.org/zap"
)

// Ошибки, которые обработчик превращает в повторный запрос ответа
var (
	ErrNoSession     = errors.New("нет активного раунда тестирования")
	ErrAnswerTooLong = errors.New("ответ слишком длинный")
)

// QuizState представляет текущее состояние раунда вопросов.
// Инвариант: 0 <= Index < len(Questions).
type QuizState struct {
	ProfileID         string
	Category          Category
	Questions         []string
	Index             int
	SpecializationIDs []uint
}

// ActionKind определяет, что делать после принятого ответа
type ActionKind int

const (
	ActionAdvance ActionKind = iota
	ActionNextCategory
	ActionComplete
)

// NextAction описывает следующий шаг после принятого ответа
type NextAction struct {
	Kind         ActionKind
	NextQuestion string
	Category     Category
	ProfileID    string
}

// Store описывает операции хранилища, нужные тестированию
type Store interface {
	UpsertAnswer(profileID, category string, index int, question, answer string) error
	AnswersByCategory(profileID, category string) ([]storage.AnsweredQuestion, error)
	SaveAssessment(profileID string, score int, interpersonalResult, interpersonalRecommendation, technicalResult, technicalRecommendation string) error
	SpecializationNames(ids []uint) ([]string, error)
}

// Engine пролистывает наборы вопросов по одному на каждый принятый ответ
type Engine struct {
	generator *Generator
	store     Store
	sessions  *session.Store[QuizState]
	maxAnswer int
	log       *zap.Logger
}

// NewEngine создает новый движок тестирования
func NewEngine(generator *Generator, store Store, sessions *session.Store[QuizState], maxAnswerLength int, log *zap.Logger) *Engine {
	return &Engine{
		generator: generator,
		store:     store,
		sessions:  sessions,
		maxAnswer: maxAnswerLength,
		log:       log,
	}
}

// Begin генерирует первый набор вопросов (IQ) и возвращает первый вопрос
func (e *Engine) Begin(ctx context.Context, userID int64, profileID string, specializationIDs []uint) (string, error) {
	questions, err := e.generator.Generate(ctx, CategoryAptitude, nil)
	if err != nil {
		return "", err
	}

	e.sessions.Set(userID, QuizState{
		ProfileID:         profileID,
		Category:          CategoryAptitude,
		Questions:         questions,
		Index:             0,
		SpecializationIDs: specializationIDs,
	})

	e.log.Debug("раунд тестирования начат",
		zap.Int64("user_id", userID),
		zap.String("profile_id", profileID),
		zap.Int("questions", len(questions)))

	return questions[0], nil
}

// Active сообщает, идет ли у пользователя раунд тестирования
func (e *Engine) Active(userID int64) bool {
	_, ok := e.sessions.Get(userID)
	return ok
}

// Abort сбрасывает текущий раунд тестирования
func (e *Engine) Abort(userID int64) {
	e.sessions.Delete(userID)
}

// SubmitAnswer принимает ответ на текущий вопрос и возвращает следующий шаг.
// Ответ длиннее лимита отклоняется без записи и без сдвига курсора.
func (e *Engine) SubmitAnswer(ctx context.Context, userID int64, answer string) (NextAction, error) {
	state, ok := e.sessions.Get(userID)
	if !ok {
		return NextAction{}, ErrNoSession
	}

	if len([]rune(answer)) > e.maxAnswer {
		return NextAction{}, ErrAnswerTooLong
	}

	question := state.Questions[state.Index]
	err := e.store.UpsertAnswer(state.ProfileID, state.Category.String(), state.Index, question, answer)
	if err != nil {
		return NextAction{}, fmt.Errorf("ошибка сохранения ответа: %w", err)
	}

	// Набор еще не исчерпан: сдвигаем курсор на один вопрос
	if state.Index < len(state.Questions)-1 {
		state.Index++
		e.sessions.Set(userID, state)
		return NextAction{Kind: ActionAdvance, NextQuestion: state.Questions[state.Index]}, nil
	}

	next, ok := state.Category.Next()
	if !ok {
		// Техническая категория исчерпана: тестирование завершено
		e.sessions.Delete(userID)
		return NextAction{Kind: ActionComplete, ProfileID: state.ProfileID}, nil
	}

	firstQuestion, err := e.regenerate(ctx, userID, state, next)
	if err != nil {
		return NextAction{}, err
	}

	return NextAction{Kind: ActionNextCategory, NextQuestion: firstQuestion, Category: next, ProfileID: state.ProfileID}, nil
}

// CurrentState возвращает текущее состояние раунда, если оно есть
func (e *Engine) CurrentState(userID int64) (QuizState, bool) {
	return e.sessions.Get(userID)
}

func (e *Engine) regenerate(ctx context.Context, userID int64, state QuizState, next Category) (string, error) {
	var specializations []string
	if next == CategoryTechnical {
		names, err := e.store.SpecializationNames(state.SpecializationIDs)
		if err != nil {
			return "", err
		}
		specializations = names
	}

	questions, err := e.generator.Generate(ctx, next, specializations)
	if err != nil {
		return "", err
	}

	state.Category = next
	state.Questions = questions
	state.Index = 0
	e.sessions.Set(userID, state)

	e.log.Debug("переход к следующей категории",
		zap.Int64("user_id", userID),
		zap.String("category", next.String()),
		zap.Int("questions", len(questions)))

	return questions[0], nil
}
