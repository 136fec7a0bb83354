package assessment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recruiting-bot/internal/config"
	"recruiting-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCompleter отдает заранее заданные ответы и запоминает промпты
type stubCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("нет заготовленных ответов")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// fakeStore хранит ответы в памяти
type fakeStore struct {
	answers   map[string]storage.AnsweredQuestion
	specNames []string
	saved     *Result
	savedID   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{answers: make(map[string]storage.AnsweredQuestion)}
}

func answerKey(profileID, category string, index int) string {
	return fmt.Sprintf("%s/%s/%d", profileID, category, index)
}

func (f *fakeStore) UpsertAnswer(profileID, category string, index int, question, answer string) error {
	f.answers[answerKey(profileID, category, index)] = storage.AnsweredQuestion{
		ProfileID: profileID,
		Category:  category,
		Index:     index,
		Question:  question,
		Answer:    answer,
	}
	return nil
}

func (f *fakeStore) AnswersByCategory(profileID, category string) ([]storage.AnsweredQuestion, error) {
	var result []storage.AnsweredQuestion
	for i := 0; ; i++ {
		qa, ok := f.answers[answerKey(profileID, category, i)]
		if !ok {
			break
		}
		result = append(result, qa)
	}
	return result, nil
}

func (f *fakeStore) SaveAssessment(profileID string, score int, interpersonalResult, interpersonalRecommendation, technicalResult, technicalRecommendation string) error {
	f.savedID = profileID
	f.saved = &Result{
		AptitudeScore:               score,
		InterpersonalResult:         interpersonalResult,
		InterpersonalRecommendation: interpersonalRecommendation,
		TechnicalResult:             technicalResult,
		TechnicalRecommendation:     technicalRecommendation,
	}
	return nil
}

func (f *fakeStore) SpecializationNames(ids []uint) ([]string, error) {
	return f.specNames, nil
}

func testFlowConfig() *config.FlowConfig {
	return &config.FlowConfig{
		Flow: config.FlowSettings{
			Language:             "russian",
			QuestionsPerCategory: 10,
			MaxAnswerLength:      200,
			SessionTTLHours:      24,
		},
		InterpersonalTraits: []string{"коммуникация", "руководство", "решение проблем", "адаптивность"},
		Generation: config.GenerationSettings{
			QuestionMaxTokens: 2000,
			AnalysisMaxTokens: 1000,
		},
	}
}

func TestExtractScore(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{name: "обычный ответ", in: "Result: 132 points", want: 132},
		{name: "без цифр", in: "no score here", want: 0},
		{name: "цифры склеиваются", in: "1 out of 2 5", want: 125},
		{name: "пустая строка", in: "", want: 0},
		{name: "только число", in: "98", want: 98},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractScore(tc.in))
		})
	}
}

func TestStripAnswerPrefix(t *testing.T) {
	assert.Equal(t, "хороший кандидат", StripAnswerPrefix("Ответ: хороший кандидат"))
	assert.Equal(t, "хороший кандидат", StripAnswerPrefix("  Ответ:хороший кандидат"))
	assert.Equal(t, "без префикса", StripAnswerPrefix("без префикса"))
}

func TestAnalyzeOrderAndResults(t *testing.T) {
	store := newFakeStore()
	for _, cat := range []Category{CategoryAptitude, CategoryInterpersonal, CategoryTechnical} {
		require.NoError(t, store.UpsertAnswer("p1", cat.String(), 0, "Вопрос?", "Мой ответ"))
	}

	stub := &stubCompleter{responses: []string{
		"Суммарный балл: 120",
		"Ответ: коммуникация развита",
		"Ответ: больше слушать",
		"знает Go",
		"учить SQL",
	}}

	analyzer := NewAnalyzer(stub, store, testFlowConfig(), zap.NewNop())
	result, err := analyzer.Analyze(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, stub.prompts, 5)
	assert.Contains(t, stub.prompts[0], "определения IQ интеллект")
	assert.Contains(t, stub.prompts[1], "по софт-скиллам и верни результат")
	assert.Contains(t, stub.prompts[2], "по софт-скиллам и рекомендации")
	assert.Contains(t, stub.prompts[3], "по техническим навыкам и верни результат")
	assert.Contains(t, stub.prompts[4], "по техническим навыкам и рекомендации")

	// Транскрипт содержит вопрос и ответ кандидата
	assert.Contains(t, stub.prompts[0], "Вопрос?\nОтвет: Мой ответ")

	assert.Equal(t, 120, result.AptitudeScore)
	assert.Equal(t, "коммуникация развита", result.InterpersonalResult)
	assert.Equal(t, "больше слушать", result.InterpersonalRecommendation)
	assert.Equal(t, "знает Go", result.TechnicalResult)
	assert.Equal(t, "учить SQL", result.TechnicalRecommendation)

	require.NotNil(t, store.saved)
	assert.Equal(t, "p1", store.savedID)
	assert.Equal(t, 120, store.saved.AptitudeScore)
}

func TestAnalyzeScoreWithoutDigits(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.UpsertAnswer("p1", CategoryAptitude.String(), 0, "В?", "О"))

	stub := &stubCompleter{responses: []string{
		"затрудняюсь оценить",
		"результат", "рекомендация", "результат", "рекомендация",
	}}

	analyzer := NewAnalyzer(stub, store, testFlowConfig(), zap.NewNop())
	result, err := analyzer.Analyze(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.AptitudeScore)
}

func TestAnalyzeGenerationFailurePropagates(t *testing.T) {
	store := newFakeStore()
	stub := &stubCompleter{err: errors.New("сервис недоступен")}

	analyzer := NewAnalyzer(stub, store, testFlowConfig(), zap.NewNop())
	_, err := analyzer.Analyze(context.Background(), "p1")
	require.Error(t, err)
	assert.Nil(t, store.saved)
}
