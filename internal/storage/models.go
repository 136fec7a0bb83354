package storage

import "time"

// TelegramUser представляет пользователя Telegram
type TelegramUser struct {
	UserID       int64     `gorm:"primaryKey" json:"user_id"`
	Username     string    `json:"username"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joined_at"`
	LastActionAt time.Time `gorm:"autoUpdateTime" json:"last_action_at"`
}

// Region представляет регион кандидата
type Region struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// Specialization представляет специальность кандидата
type Specialization struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// Profile представляет сохраненную анкету кандидата.
// После создания поля анкеты не меняются, дозаписываются только
// результаты тестирования и путь к отчету.
type Profile struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	TelegramUserID int64     `gorm:"index" json:"telegram_user_id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	PhoneNumber    string    `gorm:"not null" json:"phone_number"`
	BirthDate      time.Time `json:"birth_date"`
	Gender         string    `json:"gender"`
	RegionID       uint      `json:"region_id"`
	Region         Region    `json:"region"`
	CVURL          string    `json:"cv_url"`

	Specializations []Specialization `gorm:"many2many:profile_specializations" json:"specializations"`

	AptitudeScore               *int   `json:"aptitude_score"`
	InterpersonalResult         string `gorm:"type:text" json:"interpersonal_result"`
	InterpersonalRecommendation string `gorm:"type:text" json:"interpersonal_recommendation"`
	TechnicalResult             string `gorm:"type:text" json:"technical_result"`
	TechnicalRecommendation     string `gorm:"type:text" json:"technical_recommendation"`

	ReportPath string `json:"report_path"`
}

// AnsweredQuestion представляет один ответ кандидата.
// Пара (profile, category, index) уникальна: повторная отправка
// перезаписывает запись, а не дублирует ее.
type AnsweredQuestion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ProfileID string    `gorm:"not null;uniqueIndex:idx_answer_unique" json:"profile_id"`
	Category  string    `gorm:"not null;uniqueIndex:idx_answer_unique" json:"category"`
	Index     int       `gorm:"column:question_index;not null;uniqueIndex:idx_answer_unique" json:"index"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
}

// UsageAllowance представляет квоту прохождений по номеру телефона
type UsageAllowance struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	PhoneNumber string    `gorm:"index;not null" json:"phone_number"`
	Quota       int       `gorm:"not null;default:0" json:"quota"`
	Used        int       `gorm:"not null;default:0" json:"used"`
}
