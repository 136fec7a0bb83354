package assessment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recruiting-bot/internal/config"

	"go.uber.org/zap"
)

const answerPrefix = "Ответ:"

// Result представляет итоги тестирования одного кандидата
type Result struct {
	AptitudeScore               int
	InterpersonalResult         string
	InterpersonalRecommendation string
	TechnicalResult             string
	TechnicalRecommendation     string
}

// Analyzer превращает сохраненные ответы кандидата в оценку и выводы
type Analyzer struct {
	gpt   Completer
	store Store
	cfg   *config.FlowConfig
	log   *zap.Logger
}

// NewAnalyzer создает новый анализатор ответов
func NewAnalyzer(gpt Completer, store Store, cfg *config.FlowConfig, log *zap.Logger) *Analyzer {
	return &Analyzer{gpt: gpt, store: store, cfg: cfg, log: log}
}

// Analyze выполняет пять запросов анализа в фиксированном порядке,
// сохраняет результаты на анкету и возвращает их
func (a *Analyzer) Analyze(ctx context.Context, profileID string) (*Result, error) {
	aptitude, err := a.transcript(profileID, CategoryAptitude)
	if err != nil {
		return nil, err
	}
	interpersonal, err := a.transcript(profileID, CategoryInterpersonal)
	if err != nil {
		return nil, err
	}
	technical, err := a.transcript(profileID, CategoryTechnical)
	if err != nil {
		return nil, err
	}

	maxTokens := a.cfg.Generation.AnalysisMaxTokens

	rawScore, err := a.gpt.Complete(ctx, aptitude+
		"\n\nосноваясь выщеуказанным ответам дай суммарный балл по шкале 1 - 250 для "+
		"определения IQ интеллект и верни только цифру.", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка анализа IQ теста: %w", err)
	}
	score := ExtractScore(rawScore)

	interpersonalResult, err := a.gpt.Complete(ctx, interpersonal+
		"\n\nПроанализируй ответы кандидата на вопросы по софт-скиллам и верни результат в виде текста.", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка анализа софт-скиллов: %w", err)
	}

	interpersonalRecommendation, err := a.gpt.Complete(ctx, interpersonal+
		"\n\nПроанализируй ответы кандидата на вопросы по софт-скиллам и рекомендации по улучшению.", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка рекомендаций по софт-скиллам: %w", err)
	}

	technicalResult, err := a.gpt.Complete(ctx, technical+
		"\n\nПроанализируй ответы кандидата на вопросы по техническим навыкам и верни результат в виде текста.", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка анализа технических навыков: %w", err)
	}

	technicalRecommendation, err := a.gpt.Complete(ctx, technical+
		"\n\nПроанализируй ответы кандидата на вопросы по техническим навыкам и рекомендации по улучшению.", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка рекомендаций по техническим навыкам: %w", err)
	}

	result := &Result{
		AptitudeScore:               score,
		InterpersonalResult:         StripAnswerPrefix(interpersonalResult),
		InterpersonalRecommendation: StripAnswerPrefix(interpersonalRecommendation),
		TechnicalResult:             StripAnswerPrefix(technicalResult),
		TechnicalRecommendation:     StripAnswerPrefix(technicalRecommendation),
	}

	err = a.store.SaveAssessment(profileID, result.AptitudeScore,
		result.InterpersonalResult, result.InterpersonalRecommendation,
		result.TechnicalResult, result.TechnicalRecommendation)
	if err != nil {
		return nil, err
	}

	a.log.Info("тестирование проанализировано",
		zap.String("profile_id", profileID),
		zap.Int("score", result.AptitudeScore))

	return result, nil
}

// transcript собирает диалог категории в формате "<вопрос>\nОтвет: <ответ>"
func (a *Analyzer) transcript(profileID string, category Category) (string, error) {
	answers, err := a.store.AnswersByCategory(profileID, category.String())
	if err != nil {
		return "", err
	}

	lines := make([]string, len(answers))
	for i, qa := range answers {
		lines[i] = fmt.Sprintf("%s\nОтвет: %s", qa.Question, qa.Answer)
	}
	return strings.Join(lines, "\n"), nil
}

// ExtractScore склеивает все цифры из текста в одно число.
// Текст без цифр дает 0 и никогда не считается ошибкой.
func ExtractScore(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	score, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return score
}

// StripAnswerPrefix убирает служебный префикс "Ответ:" из начала текста
func StripAnswerPrefix(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, answerPrefix) {
		text = strings.TrimSpace(strings.TrimPrefix(text, answerPrefix))
	}
	return text
}
