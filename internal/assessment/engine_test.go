package assessment

import (
	"context"
	"strings"
	"testing"
	"time"

	"recruiting-bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func questionList(prefix string, n int) string {
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, prefix)
	}
	return strings.Join(lines, "\n")
}

func newTestEngine(stub *stubCompleter, store *fakeStore) *Engine {
	cfg := testFlowConfig()
	generator := NewGenerator(stub, cfg)
	sessions := session.New[QuizState](24 * time.Hour)
	return NewEngine(generator, store, sessions, cfg.GetMaxAnswerLength(), zap.NewNop())
}

func TestBeginReturnsFirstQuestion(t *testing.T) {
	stub := &stubCompleter{responses: []string{"Вопрос 1\n\nВопрос 2\nВопрос 3"}}
	engine := newTestEngine(stub, newFakeStore())

	question, err := engine.Begin(context.Background(), 1, "p1", []uint{5})
	require.NoError(t, err)
	assert.Equal(t, "Вопрос 1", question)
	assert.True(t, engine.Active(1))
}

func TestSubmitAnswerAdvancesCursor(t *testing.T) {
	stub := &stubCompleter{responses: []string{"В1\nВ2\nВ3"}}
	store := newFakeStore()
	engine := newTestEngine(stub, store)

	_, err := engine.Begin(context.Background(), 1, "p1", nil)
	require.NoError(t, err)

	action, err := engine.SubmitAnswer(context.Background(), 1, "ответ")
	require.NoError(t, err)
	assert.Equal(t, ActionAdvance, action.Kind)
	assert.Equal(t, "В2", action.NextQuestion)

	saved := store.answers[answerKey("p1", "iq_test", 0)]
	assert.Equal(t, "В1", saved.Question)
	assert.Equal(t, "ответ", saved.Answer)
}

func TestSubmitAnswerOverwritesSameIndex(t *testing.T) {
	stub := &stubCompleter{responses: []string{"В1\nВ2"}}
	store := newFakeStore()
	engine := newTestEngine(stub, store)

	_, err := engine.Begin(context.Background(), 1, "p1", nil)
	require.NoError(t, err)

	_, err = engine.SubmitAnswer(context.Background(), 1, "первый")
	require.NoError(t, err)

	// Возвращаем курсор и отправляем ответ на тот же индекс повторно
	state, ok := engine.CurrentState(1)
	require.True(t, ok)
	state.Index = 0
	engine.sessions.Set(1, state)

	_, err = engine.SubmitAnswer(context.Background(), 1, "второй")
	require.NoError(t, err)

	assert.Len(t, store.answers, 1)
	assert.Equal(t, "второй", store.answers[answerKey("p1", "iq_test", 0)].Answer)
}

func TestAnswerLengthLimit(t *testing.T) {
	stub := &stubCompleter{responses: []string{"В1\nВ2"}}
	engine := newTestEngine(stub, newFakeStore())

	_, err := engine.Begin(context.Background(), 1, "p1", nil)
	require.NoError(t, err)

	// Ровно 200 символов принимается
	_, err = engine.SubmitAnswer(context.Background(), 1, strings.Repeat("а", 200))
	require.NoError(t, err)

	// 201 символ отклоняется без сдвига курсора
	state, _ := engine.CurrentState(1)
	indexBefore := state.Index

	_, err = engine.SubmitAnswer(context.Background(), 1, strings.Repeat("а", 201))
	assert.ErrorIs(t, err, ErrAnswerTooLong)

	state, _ = engine.CurrentState(1)
	assert.Equal(t, indexBefore, state.Index)
}

func TestCategoryTransitionOrder(t *testing.T) {
	for _, setLen := range []int{1, 10} {
		stub := &stubCompleter{responses: []string{
			questionList("iq?", setLen),
			questionList("soft?", setLen),
			questionList("tech?", setLen),
		}}
		store := newFakeStore()
		store.specNames = []string{"Backend разработка"}
		engine := newTestEngine(stub, store)

		_, err := engine.Begin(context.Background(), 1, "p1", []uint{1})
		require.NoError(t, err)

		var transitions []ActionKind
		for round := 0; round < 3; round++ {
			for i := 0; i < setLen; i++ {
				action, err := engine.SubmitAnswer(context.Background(), 1, "ответ")
				require.NoError(t, err)
				if i == setLen-1 {
					transitions = append(transitions, action.Kind)
				} else {
					assert.Equal(t, ActionAdvance, action.Kind)
				}
			}
		}

		assert.Equal(t, []ActionKind{ActionNextCategory, ActionNextCategory, ActionComplete}, transitions,
			"set length %d", setLen)
		assert.False(t, engine.Active(1))

		// Технический промпт построен из выбранных специальностей
		assert.Contains(t, stub.prompts[2], "<<Backend разработка>>")
	}
}

func TestCompleteCarriesProfileID(t *testing.T) {
	stub := &stubCompleter{responses: []string{"В1", "С1", "Т1"}}
	store := newFakeStore()
	engine := newTestEngine(stub, store)

	_, err := engine.Begin(context.Background(), 7, "profile-42", []uint{1})
	require.NoError(t, err)

	var last NextAction
	for i := 0; i < 3; i++ {
		last, err = engine.SubmitAnswer(context.Background(), 7, "ответ")
		require.NoError(t, err)
	}

	assert.Equal(t, ActionComplete, last.Kind)
	assert.Equal(t, "profile-42", last.ProfileID)
}

func TestSubmitAnswerWithoutSession(t *testing.T) {
	engine := newTestEngine(&stubCompleter{}, newFakeStore())

	_, err := engine.SubmitAnswer(context.Background(), 99, "ответ")
	assert.ErrorIs(t, err, ErrNoSession)
}
