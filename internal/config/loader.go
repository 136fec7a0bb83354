package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию потока из YAML файла
func Load(filename string) (*FlowConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var config FlowConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *FlowConfig) error {
	if config.Flow.Language == "" {
		return fmt.Errorf("flow.language должен быть задан")
	}

	if config.Flow.QuestionsPerCategory <= 0 {
		return fmt.Errorf("flow.questions_per_category должно быть больше 0")
	}

	if config.Flow.MaxAnswerLength <= 0 {
		return fmt.Errorf("flow.max_answer_length должно быть больше 0")
	}

	if config.Flow.SessionTTLHours <= 0 {
		return fmt.Errorf("flow.session_ttl_hours должно быть больше 0")
	}

	if len(config.InterpersonalTraits) == 0 {
		return fmt.Errorf("interpersonal_traits не может быть пустым")
	}

	if config.Generation.QuestionMaxTokens <= 0 {
		return fmt.Errorf("generation.question_max_tokens должно быть больше 0")
	}

	if config.Generation.AnalysisMaxTokens <= 0 {
		return fmt.Errorf("generation.analysis_max_tokens должно быть больше 0")
	}

	return nil
}
