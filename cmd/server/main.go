package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"arcana-server/internal/agent"
	"arcana-server/internal/engine"
	"arcana-server/internal/infrastructure/storage"
	"arcana-server/internal/server"
	"arcana-server/internal/version"
	"arcana-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var replayPath string
	var withBot bool
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .abrp replay file to simulate")
	flag.BoolVar(&withBot, "bot", false, "Attach a headless agent that plays on its own")
	flag.Parse()

	logger.Log.Info("Starting Arcana Server...")
	logger.Log.Info(version.String())

	replays := storage.NewReplayService("replays")

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")

		session, err := replays.Load(replayPath)
		if err != nil {
			logger.Log.Fatal("Failed to load replay: ", err)
		}

		// Сервис создается с сидом из файла: та же карта, те же
		// противники, те же броски.
		cfg := engine.NewConfig()
		cfg.Seed = session.Seed

		gameService := engine.NewService(cfg)
		gameService.Playback(session)
		return // Выходим после симуляции
	}

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %d", cfg.Seed)
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)
	gameService.Start()

	if withBot {
		bot := agent.NewBot("agent_1", gameService)
		go bot.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	gameService.Stop()

	// Сохраняем протокол сессии
	if err := replays.Save(gameService.Replay()); err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
	}

	logger.Log.Info("Done.")
}
