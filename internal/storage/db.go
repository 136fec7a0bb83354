package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open открывает подключение к PostgreSQL и выполняет миграции
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	err = db.AutoMigrate(
		&TelegramUser{},
		&Region{},
		&Specialization{},
		&Profile{},
		&AnsweredQuestion{},
		&UsageAllowance{},
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка миграции схемы: %w", err)
	}

	return db, nil
}
