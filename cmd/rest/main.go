package main

import (
	"context"
	"log"

	"faq-assistant-be/internal/bootstrap"
	"faq-assistant-be/internal/config"
	"faq-assistant-be/internal/server"
	"faq-assistant-be/internal/tracer"
	"faq-assistant-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database (postgres backend only)
	var gormDB *gorm.DB
	if cfg.Store.Backend == "postgres" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Store.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Unable to migrate database: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
