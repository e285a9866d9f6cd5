package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/matt-steen/tasks-cli/pkg/config"
	"github.com/matt-steen/tasks-cli/pkg/controller"
	"github.com/matt-steen/tasks-cli/pkg/db"
	"github.com/matt-steen/tasks-cli/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	app = kingpin.New("tasks-cli", "A terminal task manager backed by SQLite")

	dbPath       = app.Flag("db", "Path to the SQLite database (env TASKS_DB_PATH)").String()
	logPath      = app.Flag("log", "Path to the log file (env TASKS_LOG_PATH)").String()
	logLevel     = app.Flag("log-level", "Log level: debug, info, warn or error (env TASKS_LOG_LEVEL)").String()
	settingsPath = app.Flag("settings", "Path to the YAML settings file (env TASKS_SETTINGS_PATH)").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tasks-cli: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load("", config.Env{
		DBPath:       *dbPath,
		LogPath:      *logPath,
		LogLevel:     *logLevel,
		SettingsPath: *settingsPath,
	})
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}

	defer logFile.Close()

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05", NoColor: true,
	}).Level(cfg.ZerologLevel())

	log.Info().Str("db", cfg.DBPath).Str("settings", cfg.SettingsPath).Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.DBPath)
	if err != nil {
		return err
	}

	defer database.Close()

	svc := service.NewTaskService(database, service.WithNotesIndicator(cfg.Settings.UI.Icons.Notes))

	ctrl, err := controller.NewController(ctx, svc, cfg.Settings)
	if err != nil {
		return err
	}

	return ctrl.Go()
}
