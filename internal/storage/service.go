package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoAllowance возвращается, когда по номеру телефона нет свободной квоты
var ErrNoAllowance = errors.New("нет доступной квоты для этого номера")

// Service предоставляет доступ к записям в базе данных
type Service struct {
	db *gorm.DB
}

// NewService создает новый сервис хранилища
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// EnsureUser создает пользователя Telegram при первом обращении
// и обновляет время последней активности
func (s *Service) EnsureUser(userID int64, username string) error {
	user := TelegramUser{UserID: userID, Username: username}
	err := s.db.Where(TelegramUser{UserID: userID}).FirstOrCreate(&user).Error
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	err = s.db.Model(&TelegramUser{}).Where("user_id = ?", userID).
		Update("last_action_at", gorm.Expr("NOW()")).Error
	if err != nil {
		return fmt.Errorf("ошибка обновления активности: %w", err)
	}
	return nil
}

// ConsumeAllowance атомарно расходует одну единицу квоты по номеру телефона.
// Инкремент выполняется одним UPDATE с условием used < quota,
// чтобы параллельные прохождения не теряли обновления.
func (s *Service) ConsumeAllowance(phoneNumber string) error {
	res := s.db.Model(&UsageAllowance{}).
		Where("phone_number = ? AND used < quota", phoneNumber).
		UpdateColumn("used", gorm.Expr("used + 1"))
	if res.Error != nil {
		return fmt.Errorf("ошибка обновления квоты: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoAllowance
	}
	return nil
}

// Regions возвращает все регионы
func (s *Service) Regions() ([]Region, error) {
	var regions []Region
	err := s.db.Order("id").Find(&regions).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки регионов: %w", err)
	}
	return regions, nil
}

// RegionByID возвращает регион по идентификатору
func (s *Service) RegionByID(id uint) (*Region, error) {
	var region Region
	err := s.db.First(&region, id).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска региона %d: %w", id, err)
	}
	return &region, nil
}

// Specializations возвращает все специальности
func (s *Service) Specializations() ([]Specialization, error) {
	var specs []Specialization
	err := s.db.Order("id").Find(&specs).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки специальностей: %w", err)
	}
	return specs, nil
}

// SpecializationNames возвращает названия специальностей по идентификаторам
func (s *Service) SpecializationNames(ids []uint) ([]string, error) {
	var names []string
	err := s.db.Model(&Specialization{}).Where("id IN ?", ids).
		Order("id").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки специальностей: %w", err)
	}
	return names, nil
}

// CreateProfile сохраняет анкету кандидата вместе с выбранными специальностями
func (s *Service) CreateProfile(profile *Profile, specializationIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("ошибка создания анкеты: %w", err)
		}

		var specs []Specialization
		if err := tx.Where("id IN ?", specializationIDs).Find(&specs).Error; err != nil {
			return fmt.Errorf("ошибка загрузки специальностей: %w", err)
		}
		if err := tx.Model(profile).Association("Specializations").Append(&specs); err != nil {
			return fmt.Errorf("ошибка привязки специальностей: %w", err)
		}
		return nil
	})
}

// ProfileByID возвращает анкету вместе с регионом и специальностями
func (s *Service) ProfileByID(id string) (*Profile, error) {
	var profile Profile
	err := s.db.Preload("Region").Preload("Specializations").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска анкеты %s: %w", id, err)
	}
	return &profile, nil
}

// UpsertAnswer создает или перезаписывает ответ по ключу (анкета, категория, индекс)
func (s *Service) UpsertAnswer(profileID, category string, index int, question, answer string) error {
	record := AnsweredQuestion{
		ProfileID: profileID,
		Category:  category,
		Index:     index,
		Question:  question,
		Answer:    answer,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "category"}, {Name: "question_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"question", "answer"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения ответа: %w", err)
	}
	return nil
}

// AnswersByCategory возвращает ответы анкеты одной категории по порядку вопросов
func (s *Service) AnswersByCategory(profileID, category string) ([]AnsweredQuestion, error) {
	var answers []AnsweredQuestion
	err := s.db.Where("profile_id = ? AND category = ?", profileID, category).
		Order("question_index").Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки ответов: %w", err)
	}
	return answers, nil
}

// SaveAssessment записывает результаты тестирования на анкету
func (s *Service) SaveAssessment(profileID string, score int, interpersonalResult, interpersonalRecommendation, technicalResult, technicalRecommendation string) error {
	err := s.db.Model(&Profile{}).Where("id = ?", profileID).Updates(map[string]interface{}{
		"aptitude_score":               score,
		"interpersonal_result":         interpersonalResult,
		"interpersonal_recommendation": interpersonalRecommendation,
		"technical_result":             technicalResult,
		"technical_recommendation":     technicalRecommendation,
	}).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения результатов: %w", err)
	}
	return nil
}

// SetReportPath записывает путь к готовому отчету
func (s *Service) SetReportPath(profileID, path string) error {
	err := s.db.Model(&Profile{}).Where("id = ?", profileID).
		Update("report_path", path).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения пути отчета: %w", err)
	}
	return nil
}

// SeedDefaults заполняет справочники регионов и специальностей,
// если они еще пустые
func (s *Service) SeedDefaults(regions, specializations []string) error {
	var count int64
	if err := s.db.Model(&Region{}).Count(&count).Error; err != nil {
		return fmt.Errorf("ошибка проверки регионов: %w", err)
	}
	if count == 0 {
		for _, name := range regions {
			if err := s.db.Create(&Region{Name: name}).Error; err != nil {
				return fmt.Errorf("ошибка заполнения регионов: %w", err)
			}
		}
	}

	if err := s.db.Model(&Specialization{}).Count(&count).Error; err != nil {
		return fmt.Errorf("ошибка проверки специальностей: %w", err)
	}
	if count == 0 {
		for _, name := range specializations {
			if err := s.db.Create(&Specialization{Name: name}).Error; err != nil {
				return fmt.Errorf("ошибка заполнения специальностей: %w", err)
			}
		}
	}
	return nil
}
