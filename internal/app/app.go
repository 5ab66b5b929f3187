// Package app wires the repositories, services, scheduler and gateway
// session into one runnable unit.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/config"
	"github.com/Sneethan/gntle-habits/internal/dashboard"
	"github.com/Sneethan/gntle-habits/internal/db"
	"github.com/Sneethan/gntle-habits/internal/discord"
	"github.com/Sneethan/gntle-habits/internal/external"
	"github.com/Sneethan/gntle-habits/internal/repository"
	"github.com/Sneethan/gntle-habits/internal/scheduler"
	"github.com/Sneethan/gntle-habits/internal/service"
)

type App struct {
	Config    *config.Config
	DB        *sqlx.DB
	Session   *discord.Session
	Bot       *discord.Bot
	Scheduler *scheduler.Scheduler
	Boards    *dashboard.Renderer
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBPath, cfg.MaxDBConnections)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	err = db.RunMigrations(database.DB)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	clk := clock.New(cfg.Timezone)

	habitRepo := repository.NewHabitRepository(database)
	participantRepo := repository.NewParticipantRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	restockRepo := repository.NewRestockRepository(database)
	debtRepo := repository.NewDebtRepository(database)
	briefingRepo := repository.NewBriefingRepository(database)
	countdownRepo := repository.NewCountdownRepository(database)
	affirmationRepo := repository.NewAffirmationRepository(database)
	messageRepo := repository.NewMessageRepository(database)

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	weather := external.NewWeatherClient(cfg.WeatherAPIURL)
	geocoder := external.NewGeocodeClient(cfg.GeocodingAPIURL)
	transit := external.NewTransitClient(cfg.GoogleMapsAPIKey)
	suggestions := external.NewSuggestionClient(cfg.OpenAIAPIKey)

	habitSvc := service.NewHabitService(habitRepo, participantRepo, progressRepo, clk)
	streakSvc := service.NewStreakService(database, clk)
	restockSvc := service.NewRestockService(restockRepo, clk)
	debtSvc := service.NewDebtService(debtRepo, clk)
	affirmationSvc := service.NewAffirmationService(affirmationRepo, cfg.AffirmationTone)
	briefingSvc := service.NewBriefingService(
		briefingRepo, countdownRepo, habitSvc,
		weather, transit, suggestions,
		clk, cfg.AffirmationTone,
	)

	boards := dashboard.New(progressRepo, debtRepo, messageRepo, session, clk, cfg.ReminderChannelID)

	sched := scheduler.New(
		habitRepo, participantRepo, messageRepo,
		streakSvc, restockSvc, briefingSvc,
		boards, session, clk,
		cfg.ReminderChannelID, cfg.StreakUpdateInterval,
	)
	habitSvc.SetRescheduler(sched)

	bot := discord.NewBot(
		session,
		habitSvc, streakSvc, restockSvc, debtSvc, briefingSvc, affirmationSvc,
		participantRepo, messageRepo,
		geocoder, clk,
	)

	return &App{
		Config:    cfg,
		DB:        database,
		Session:   session,
		Bot:       bot,
		Scheduler: sched,
		Boards:    boards,
	}, nil
}

// Start opens the gateway, registers the command surface and kicks off the
// scheduled jobs, including recovery of reminders missed while offline.
func (a *App) Start() error {
	a.Bot.Install()

	err := a.Session.Open()
	if err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	err = a.Bot.RegisterCommands()
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	err = a.Scheduler.Start()
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.Scheduler.RecoverMissedReminders(time.Now())

	slog.Info("bot is up", "env", a.Config.AppEnv)
	return nil
}

func (a *App) Stop() {
	a.Scheduler.Stop()

	err := a.Session.Close()
	if err != nil {
		slog.Warn("gateway close failed", "error", err)
	}

	err = db.Close(a.DB)
	if err != nil {
		slog.Warn("database close failed", "error", err)
	}
}
