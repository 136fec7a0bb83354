package main

import (
	"fmt"
	"log"

	"recruiting-bot/internal/assessment"
	"recruiting-bot/internal/bot"
	"recruiting-bot/internal/config"
	"recruiting-bot/internal/flow"
	"recruiting-bot/internal/gpt"
	"recruiting-bot/internal/logger"
	"recruiting-bot/internal/metrics"
	"recruiting-bot/internal/report"
	"recruiting-bot/internal/session"
	"recruiting-bot/internal/storage"
	"recruiting-bot/internal/telegram"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("🚀 Запуск Recruiting Bot...")

	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	appCfg := config.LoadAppConfig()
	if appCfg.OpenAI.APIKey == "" {
		log.Fatal("OPENAI_API_KEY не установлен")
	}
	if appCfg.Telegram.Token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN не установлен")
	}
	if appCfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN не установлен")
	}

	// Загружаем конфигурацию потока
	flowCfg, err := config.Load("config/bot.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации потока: %v", err)
	}

	zapLog, err := logger.New(appCfg.LogJSON, appCfg.LogDebug)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer zapLog.Sync()

	// Подключаемся к базе данных
	db, err := storage.Open(appCfg.Database.DSN)
	if err != nil {
		zapLog.Fatal("ошибка подключения к базе данных", zap.Error(err))
	}
	store := storage.NewService(db)

	if err := store.SeedDefaults(flowCfg.Seed.Regions, flowCfg.Seed.Specializations); err != nil {
		zapLog.Fatal("ошибка заполнения справочников", zap.Error(err))
	}

	// Инициализируем сервисы
	m := metrics.NewMetrics()
	gptClient := gpt.New(appCfg.OpenAI.APIKey, appCfg.OpenAI.Model, appCfg.OpenAI.Temperature, m)

	formSessions := session.New[flow.FormState](flowCfg.GetSessionTTL())
	quizSessions := session.New[assessment.QuizState](flowCfg.GetSessionTTL())

	tgBot := telegram.New(appCfg.Telegram.Token)
	formController := flow.NewController(formSessions, store, tgBot, zapLog)

	generator := assessment.NewGenerator(gptClient, flowCfg)
	engine := assessment.NewEngine(generator, store, quizSessions, flowCfg.GetMaxAnswerLength(), zapLog)
	analyzer := assessment.NewAnalyzer(gptClient, store, flowCfg, zapLog)

	renderer := report.NewRenderer(appCfg.Report.OutputDir, zapLog)

	handler := bot.NewHandler(tgBot, formController, engine, analyzer, store, renderer, m, zapLog)

	zapLog.Info("бот инициализирован",
		zap.String("model", appCfg.OpenAI.Model),
		zap.Int("questions_per_category", flowCfg.GetQuestionsPerCategory()))

	fmt.Println("🤖 Бот запущен, ожидание сообщений...")

	// Запускаем polling
	err = tgBot.StartPolling(appCfg.Telegram.PollTimeout, handler.HandleUpdate)
	if err != nil {
		zapLog.Fatal("ошибка запуска бота", zap.Error(err))
	}
}
