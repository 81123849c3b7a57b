package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chill-game-server/handlers"
	"chill-game-server/store"
	"chill-game-server/utils"
	"chill-game-server/workers"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	cfg := utils.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	err = db.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		log.Fatal("failed to ensure indexes:", err)
	}

	health := workers.NewStoreHealthWorker(db, cfg.PingInterval, cfg.StoreTimeout)
	if err := health.Start(); err != nil {
		log.Fatal("failed to start store health worker:", err)
	}

	app := handlers.NewApp(db, health, handlers.AppConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		StoreTimeout:   cfg.StoreTimeout,
		BodyLimit:      cfg.BodyLimit,
		AccessLog:      true,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	log.Printf("✅ game server is running on port:%s", cfg.Port)
	log.Printf("✅ Store driver: %s", cfg.StoreDriver)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := health.Stop(); err != nil {
		log.Printf("Health worker shutdown error: %v", err)
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Close(closeCtx); err != nil {
		log.Printf("Database disconnect error: %v", err)
	}
}

func openDatabase(ctx context.Context, cfg utils.Config) (*store.Database, error) {
	if cfg.StoreDriver == utils.StoreDriverMemory {
		log.Println("⚠️  STORE_DRIVER=memory, documents are lost on restart")
		return store.NewMemoryDatabase(), nil
	}
	client, err := utils.ConnectMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return store.NewMongoDatabase(client, cfg.DBName), nil
}
