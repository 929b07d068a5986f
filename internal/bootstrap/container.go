package bootstrap

import (
	"log"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/config"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/controller"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/render"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/implementation"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/service"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/athena"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/embedding"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/llm/databricks"

	pktNats "github.com/AnzorAslanukov/ServiceDeskHelper/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Ingest surfaces (Exposed for cmd/ingest)
	OnenoteIngestService service.IOnenoteIngestService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional; everything downstream treats a nil publisher as
	// notifications-off.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// 3. Providers
	embeddingProvider := embedding.NewDatabricksProvider(
		cfg.Databricks.EmbeddingURL,
		cfg.Databricks.APIKey,
	)
	llmProvider := databricks.NewDatabricksProvider(
		cfg.Databricks.TextGenerationURL,
		cfg.Databricks.APIKey,
	)

	// The Athena client stays nil when credentials are absent; search then
	// answers only from the local store.
	var athenaClient *athena.Client
	if cfg.Athena.BaseURL != "" {
		client, err := athena.NewClient(athena.Config{
			AuthURL:  cfg.Athena.AuthURL,
			BaseURL:  cfg.Athena.BaseURL,
			ClientID: cfg.Athena.ClientID,
			Username: cfg.Athena.Username,
			Password: cfg.Athena.Password,
		})
		if err != nil {
			log.Printf("[WARN] Athena client not available: %v", err)
		} else {
			athenaClient = client
		}
	}

	// 4. Repositories
	ticketRepo := implementation.NewTicketRepository(db)
	pageRepo := implementation.NewOnenotePageRepository(db)
	chunkRepo := implementation.NewOnenoteChunkRepository(db)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		ticketRepo,
		embeddingProvider,
		natsPub,
		sysLogger,
	)

	var ingestService service.ITicketIngestService
	if athenaClient != nil {
		ingestService = service.NewTicketIngestService(
			athenaClient,
			ticketRepo,
			publisherService,
			natsPub,
			sysLogger,
		)
	}

	searchService := service.NewSearchService(
		ticketRepo,
		chunkRepo,
		ingestService,
		embeddingProvider,
		llmProvider,
		sysLogger,
	)

	onenoteIngestService := service.NewOnenoteIngestService(
		pageRepo,
		chunkRepo,
		embeddingProvider,
		llmProvider,
		cfg.Ingest.ChunkSize,
		cfg.Ingest.ChunkOverlap,
		sysLogger,
	)

	// 6. Rendering + Controllers
	renderer, err := render.New()
	if err != nil {
		log.Fatalf("[FATAL] Failed to parse templates: %v", err)
	}

	return &Container{
		SearchController:     controller.NewSearchController(searchService, renderer),
		ConsumerService:      consumerService,
		OnenoteIngestService: onenoteIngestService,
	}
}
