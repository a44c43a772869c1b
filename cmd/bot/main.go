package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/config"
	"github.com/aliskhannn/talup-bot/internal/delivery/telegram"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/logger"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/storage"
)

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Запустить бота"},
	{Command: "lesson", Description: "Начать урок"},
	{Command: "quit", Description: "Прервать урок"},
	{Command: "profile", Description: "Профиль и ударный режим"},
	{Command: "leaderboard", Description: "Таблица лидеров"},
	{Command: "shop", Description: "Магазин жизней"},
	{Command: "words", Description: "Мои слова"},
	{Command: "word", Description: "Случайное слово"},
	{Command: "login", Description: "Войти (использование: /login email пароль)"},
	{Command: "register", Description: "Регистрация"},
	{Command: "password", Description: "Сменить пароль"},
	{Command: "avatar", Description: "Сменить аватар (подпись к фото)"},
	{Command: "logout", Description: "Выйти из аккаунта"},
	{Command: "help", Description: "Помощь"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Initialize repositories and services.
	userRepo := repository.NewUserRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	transactor := postgres.NewTransactor(pool)
	usersIn := func(db postgres.DBTX) service.UserRepository {
		return repository.NewUserRepository(db)
	}

	api := talupapi.New(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.MaxRetries, lg.Named("talupapi"))
	files := telegram.NewFiles(bot, &http.Client{Timeout: cfg.API.Timeout})

	authService := service.NewAuthService(api, userRepo, transactor, usersIn, lg.Named("auth"))
	lessonService := service.NewLessonService(api, authService, files, lessonRepo, cfg.Lesson.PollInterval, lg.Named("lesson"))
	profileService := service.NewProfileService(api, authService, lessonRepo, cfg.Leaderboard.Size, lg.Named("profile"))

	sessions := storage.NewLessonStorage()

	handler := telegram.NewHandler(
		bot,
		lg,
		authService,
		lessonService,
		profileService,
		sessions,
		files,
		cfg.Bot.Workers,
		cfg.Lesson.AnimateProgress,
	)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")

	// Stop pollers and record unfinished lessons.
	shutdownCtx := context.WithoutCancel(ctx)
	for userID, session := range sessions.All() {
		session.Lesson.Quit(shutdownCtx)
		sessions.Delete(userID, session.Lesson.ID())
	}
}
