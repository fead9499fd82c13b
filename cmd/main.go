package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpapi "github.com/parlorgames/impostor-server/internal/api/http"
	"github.com/parlorgames/impostor-server/internal/config"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/repository"
	"github.com/parlorgames/impostor-server/internal/repository/model"
	"github.com/parlorgames/impostor-server/internal/service"
	"github.com/parlorgames/impostor-server/lib/logger/sl"
	"github.com/parlorgames/impostor-server/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	repos, err := buildRepositories(cfg.Database, log)
	if err != nil {
		log.Error("failed to initialize storage", sl.Err(err))
		os.Exit(1)
	}

	hub := service.NewHub(log)

	gameCfg := service.GameConfig{
		MinPlayers: cfg.Game.MinPlayers,
		Words:      cfg.Game.Words,
	}
	scoring := domain.ScoringConfig{
		CorrectVote:           cfg.Game.CorrectVoteScore,
		ImpostorRoundSurvived: cfg.Game.ImpostorSurvivedScore,
	}

	roomService := service.NewRoomService(repos.rooms, repos.players, repos.games, repos.rounds, repos.votes, hub, log)
	gameService := service.NewGameService(repos.rooms, repos.players, repos.games, repos.rounds, repos.votes, hub, gameCfg, log)
	statsService := service.NewStatsService(repos.rooms, repos.players, repos.games, repos.rounds, repos.votes, scoring, log)

	roomController := httpapi.NewRoomController(roomService, hub, log)
	gameController := httpapi.NewGameController(gameService, statsService)

	router := httpapi.SetupRouter(roomController, gameController, cfg.HTTP.AllowedOrigins)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

type repositories struct {
	rooms   repository.RoomRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	rounds  repository.RoundRepository
	votes   repository.VoteRepository
}

// buildRepositories wires Postgres when a DSN is configured and falls back to
// the in-memory store for local single-process runs.
func buildRepositories(cfg config.DatabaseConfig, log *slog.Logger) (*repositories, error) {
	if cfg.DSN == "" {
		log.Warn("no database dsn configured, using in-memory store")
		store := repository.NewMemoryStore()
		return &repositories{
			rooms:   repository.NewMemoryRoomRepository(store),
			players: repository.NewMemoryPlayerRepository(store),
			games:   repository.NewMemoryGameRepository(store),
			rounds:  repository.NewMemoryRoundRepository(store),
			votes:   repository.NewMemoryVoteRepository(store),
		}, nil
	}

	db, err := connectDatabase(cfg.DSN)
	if err != nil {
		return nil, err
	}

	return &repositories{
		rooms:   repository.NewPostgresRoomRepository(db),
		players: repository.NewPostgresPlayerRepository(db),
		games:   repository.NewPostgresGameRepository(db),
		rounds:  repository.NewPostgresRoundRepository(db),
		votes:   repository.NewPostgresVoteRepository(db),
	}, nil
}

func connectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Room{},
		&model.Player{},
		&model.Game{},
		&model.GamePlayer{},
		&model.Round{},
		&model.Vote{},
		&model.ChatMessage{},
	); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
