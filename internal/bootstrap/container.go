package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"faq-assistant-be/internal/config"
	"faq-assistant-be/internal/constant"
	"faq-assistant-be/internal/controller"
	"faq-assistant-be/internal/pkg/logger"
	"faq-assistant-be/internal/repository/contract"
	"faq-assistant-be/internal/repository/file"
	"faq-assistant-be/internal/repository/implementation"
	"faq-assistant-be/internal/service"
	"faq-assistant-be/pkg/embedding"
	"faq-assistant-be/pkg/resolve"
	"faq-assistant-be/pkg/resolve/corpus"
	"faq-assistant-be/pkg/resolve/history"
	"faq-assistant-be/pkg/resolve/scenario"
	"faq-assistant-be/pkg/resolve/tier"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	FaqController  controller.IFaqController
	OpsController  controller.IOpsController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

// NewContainer wires the whole application. db may be nil when the file
// store backend is configured.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	unansweredLog := logger.NewIsolatedLogger(cfg.App.UnansweredLogPath)
	resolverLogger := initResolverLogger()

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := service.NewPublisherService(pubSub, constant.UnansweredQuestionTopic)

	// 3. Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	// 4. FAQ store
	var faqRepo contract.FaqRepository
	var faqEmbRepo contract.FaqEmbeddingRepository
	if cfg.Store.Backend == "postgres" {
		if db == nil {
			log.Fatalf("[FATAL] postgres store backend selected but no database connection")
		}
		faqRepo = implementation.NewFaqRepository(db)
		faqEmbRepo = implementation.NewFaqEmbeddingRepository(db)
		log.Printf("[INFO] Using FAQ store: POSTGRES")
	} else {
		fileStore := file.NewStore(cfg.Store.FaqFilePath, cfg.Store.VectorFilePath)
		faqRepo = fileStore
		faqEmbRepo = file.NewEmbeddingStore(fileStore)
		log.Printf("[INFO] Using FAQ store: FILE (%s)", cfg.Store.FaqFilePath)
	}

	// 5. Resolution engine
	selector, err := tier.NewSelector(tier.Thresholds{
		Exact:    cfg.Resolver.ExactThreshold,
		Probable: cfg.Resolver.ProbableThreshold,
	})
	if err != nil {
		log.Fatalf("[FATAL] Invalid resolver thresholds: %v", err)
	}

	corpusStore := corpus.NewStore(nil)
	scenarios := scenario.NewManager(cfg.Resolver.SessionTTL, resolverLogger)
	memory := history.NewStore(cfg.Resolver.HistoryCapacity, cfg.Resolver.SessionTTL)
	reporter := service.NewUnansweredReporter(publisher, sysLogger)

	resolver := resolve.NewResolver(
		corpusStore,
		embeddingProvider,
		selector,
		scenarios,
		memory,
		reporter,
		cfg.Resolver.TopK,
		resolverLogger,
	)

	// 6. Services
	chatService := service.NewChatService(resolver, sysLogger)
	faqService := service.NewFaqService(faqRepo, faqEmbRepo, embeddingProvider, corpusStore, sysLogger)
	opsService := service.NewOpsService(selector, unansweredLog, sysLogger)
	consumerService := service.NewConsumerService(pubSub, constant.UnansweredQuestionTopic, unansweredLog, sysLogger)

	// Initial corpus load; an empty or missing corpus is not fatal, every
	// query just resolves to the fallback until entries are encoded.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if res, err := faqService.ReloadCorpus(ctx); err != nil {
		sysLogger.Warn("bootstrap", "Initial corpus load failed", map[string]interface{}{"error": err.Error()})
	} else {
		sysLogger.Info("bootstrap", "Corpus loaded", map[string]interface{}{
			"entries": res.Entries,
			"vectors": res.Vectors,
		})
	}

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		FaqController:   controller.NewFaqController(faqService),
		OpsController:   controller.NewOpsController(opsService, faqService),
		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}

func initResolverLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "resolver.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RESOLVER] ", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
