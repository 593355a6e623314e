package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/PIRSON21/scissors/internal/config"
	"github.com/PIRSON21/scissors/internal/http-server/handler/outline"
	authMiddleware "github.com/PIRSON21/scissors/internal/lib/api/auth/middleware"
	"github.com/PIRSON21/scissors/internal/scissors"
	"github.com/PIRSON21/scissors/internal/session"
	"github.com/PIRSON21/scissors/internal/storage/postgresql"
	"github.com/PIRSON21/scissors/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// cfg - конфиг сервера.
var cfg *config.Config

func main() {
	var configPath string
	flag.StringVar(&configPath, "path", "", "положение файла конфигурации")

	// чтение параметров
	flag.Parse()

	if configPath == "" {
		log.Fatal("не указано место файла конфигурации")
	}

	// получаем файл конфига
	cfg = config.MustCreateConfig(configPath)

	// logFile - буфер файла, в котором буду храниться логи.
	// Для каждого запуска свои логи.
	var logFile *os.File

	if cfg.Environment != envLocal {
		logFile = mustCreateLogFile()
		defer logFile.Close()
	}

	log := mustCreateLogger(cfg.Environment, logFile)

	log.Info("logger started successfully", slog.String("env", cfg.Environment))
	// подключение БД
	db := postgresql.MustConnectDB(cfg)

	// один searcher на все сессии: общий лимит одновременных поисков
	searcher := scissors.NewSearcher(
		scissors.WithConcurrency(cfg.Search.MaxConcurrent),
		scissors.WithProgressInterval(cfg.Search.ProgressInterval),
		scissors.WithLogger(log),
	)

	sessionOpts := session.Options{
		Searcher:    searcher,
		Storage:     db,
		IdleTimeout: cfg.Session.IdleTimeout,
	}

	// установка роутера chi
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(middleware.RedirectSlashes)

	router.Group(func(api chi.Router) {
		if cfg.APIKeyHash != "" {
			api.Use(authMiddleware.AuthMiddleware(authMiddleware.NewHashKeyChecker(cfg.APIKeyHash)))
		} else {
			log.Warn("API key is not configured, authorization disabled")
		}

		api.Route("/outline", func(r chi.Router) {
			r.Get("/", outline.AllOutlinesHandler(log, db, cfg))
			r.Post("/", outline.AddOutlineHandler(log, db, cfg))
			r.Get("/{id}", outline.GetOutlineHandler(log, db, cfg))
			r.Delete("/{id}", outline.DeleteOutlineHandler(log, db, cfg))
		})

		api.Get("/ws/select", ws.WebSocketHandler(log, sessionOpts))
	})

	// задание настроек сервера
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  40 * time.Second,
		WriteTimeout: 40 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server started", slog.String("addr", srv.Addr))

	// запуск сервера
	if err := srv.ListenAndServe(); err != nil {
		log.Error("error while serving: ", slog.String("err", err.Error()))
		return
	}
}

// mustCreateLogger создает логер исходя из текущего окружения.
//
// Если логер не создастся, случится паника.
func mustCreateLogger(env string, logFile *os.File) *slog.Logger {
	var logger *slog.Logger
	switch env {
	case envLocal:
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log.Fatal("неправильное окружение")
	}

	return logger
}

// mustCreateLogFile создает файл для хранения логов в формате "DD.MM.YYYY hh.mm.ss".
//
// Если файл не создастся, случится паника.
func mustCreateLogFile() *os.File {
	err := os.Mkdir("logs/", 0o755)
	if errors.Is(err, os.ErrExist) {
		log.Println("directory \"logs/\" already exists")
	} else if err != nil {
		log.Fatal("error while creating \"logs/\" directory: ", err)
	}

	fileName := time.Now().Format("02.01.2006 15.04.05")

	logFile, err := os.Create("./logs/" + fileName + ".json")
	if err != nil {
		log.Fatal("error while create log file "+fileName+": ", err)
	}

	return logFile
}
