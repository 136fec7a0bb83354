package config

import "time"

// FlowConfig представляет конфигурацию анкеты и тестирования
type FlowConfig struct {
	Flow                FlowSettings       `yaml:"flow"`
	InterpersonalTraits []string           `yaml:"interpersonal_traits"`
	Generation          GenerationSettings `yaml:"generation"`
	Seed                SeedSettings       `yaml:"seed"`
}

// SeedSettings содержит начальное наполнение справочников
type SeedSettings struct {
	Regions         []string `yaml:"regions"`
	Specializations []string `yaml:"specializations"`
}

// FlowSettings содержит общие настройки потока
type FlowSettings struct {
	Language             string `yaml:"language"`
	QuestionsPerCategory int    `yaml:"questions_per_category"`
	MaxAnswerLength      int    `yaml:"max_answer_length"`
	SessionTTLHours      int    `yaml:"session_ttl_hours"`
}

// GenerationSettings содержит лимиты генерации текста
type GenerationSettings struct {
	QuestionMaxTokens int `yaml:"question_max_tokens"`
	AnalysisMaxTokens int `yaml:"analysis_max_tokens"`
}

// Методы для удобного доступа к конфигурации
func (c *FlowConfig) GetQuestionsPerCategory() int {
	return c.Flow.QuestionsPerCategory
}

func (c *FlowConfig) GetMaxAnswerLength() int {
	return c.Flow.MaxAnswerLength
}

func (c *FlowConfig) GetSessionTTL() time.Duration {
	return time.Duration(c.Flow.SessionTTLHours) * time.Hour
}
