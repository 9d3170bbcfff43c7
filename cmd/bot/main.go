package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/app"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/history"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/infra/config"
	idb "github.com/egornomic/aavegotchi-pet-sitter/internal/infra/database"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/infra/ethereum"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/infra/logger"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/infra/scheduler"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/infra/telegram"

	"github.com/ethereum/go-ethereum/common"
)

func main() {
	fmt.Println("Aavegotchi Pet Sitter starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Owner: %s", cfg.LogLevel, cfg.Environment, cfg.GotchiOwnerAddress)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	// Ledger client (Aavegotchi diamond over JSON-RPC)
	ledgerClient, err := ethereum.NewDiamondClient(startupCtx, cfg.RPCURL, cfg.DiamondAddress, cfg.PrivateKey, log)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to the RPC node: %v", err)
	}
	defer ledgerClient.Close()
	log.Info("Ledger client initialized.")

	// Optional pet history store
	var historyRepo history.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()

		repo := idb.NewPostgresHistoryRepository(db)
		if err := repo.EnsureSchema(startupCtx); err != nil {
			log.Fatalf("FATAL: Could not prepare pet history schema: %v", err)
		}
		historyRepo = repo
		log.Info("Pet history repository initialized.")
	} else {
		log.Info("DATABASE_URL not set. Pet history is disabled.")
	}

	// Telegram notifier
	pref := telebot.Settings{
		Token: cfg.TelegramToken,
		// The bot only pushes messages, so no poller is started.
		Synchronous: true,
		OnError: func(err error, c telebot.Context) {
			log.Errorf("telebot: %v", err)
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	operatorNotifier := telegram.NewTelebotNotifier(bot, cfg.OperatorChatID, log)
	log.Info("Operator notifier initialized.")

	// Core service and scheduler
	petService := app.NewPetSitterService(
		ledgerClient,
		operatorNotifier,
		historyRepo,
		log,
		common.HexToAddress(cfg.GotchiOwnerAddress),
		cfg.PetCooldown,
		cfg.ControlPetDelay,
	)
	petScheduler := scheduler.NewPetScheduler(petService, log, cfg.PetTickInterval, cfg.HealthCheckInterval)

	if err := petScheduler.Start(startupCtx); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	log.Info("Application setup complete. Pet sitter is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	petScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
