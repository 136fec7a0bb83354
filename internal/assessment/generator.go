package assessment

import (
	"context"
	"fmt"
	"strings"

	"recruiting-bot/internal/config"
)

// Completer представляет сервис генерации текста по промпту
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Generator генерирует наборы вопросов для раундов тестирования
type Generator struct {
	gpt Completer
	cfg *config.FlowConfig
}

// NewGenerator создает новый генератор вопросов
func NewGenerator(gpt Completer, cfg *config.FlowConfig) *Generator {
	return &Generator{gpt: gpt, cfg: cfg}
}

// Generate возвращает набор вопросов для категории.
// Для технической категории используются названия выбранных специальностей.
func (g *Generator) Generate(ctx context.Context, category Category, specializations []string) ([]string, error) {
	prompt := g.buildPrompt(category, specializations)

	raw, err := g.gpt.Complete(ctx, prompt, g.cfg.Generation.QuestionMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации вопросов (%s): %w", category, err)
	}

	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return nil, fmt.Errorf("генерация вопросов (%s) вернула пустой список", category)
	}

	return questions, nil
}

func (g *Generator) buildPrompt(category Category, specializations []string) string {
	count := g.cfg.GetQuestionsPerCategory()

	switch category {
	case CategoryAptitude:
		return fmt.Sprintf("Give %d questions for testing my IQ. Question in %s.",
			count, g.cfg.Flow.Language)
	case CategoryInterpersonal:
		return fmt.Sprintf("Сформулируйте %d вопрос, связанный с софт-навыком %s.",
			count, joinQuoted(g.cfg.InterpersonalTraits))
	default:
		return fmt.Sprintf("Сформулируйте %d вопрос, связанный с технологиями %s.",
			count, joinQuoted(specializations))
	}
}

// joinQuoted оборачивает каждый элемент в <<...>> и соединяет запятыми
func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("<<%s>>", item)
	}
	return strings.Join(quoted, ", ")
}

// parseQuestions разбивает сырой ответ модели на отдельные вопросы,
// пропуская пустые строки
func parseQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			questions = append(questions, line)
		}
	}
	return questions
}
