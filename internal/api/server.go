package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"ticketchain/internal/cache"
	"ticketchain/internal/config"
	"ticketchain/internal/database"
	"ticketchain/internal/external"
	"ticketchain/internal/handlers"
	"ticketchain/internal/ledger"
	"ticketchain/internal/messaging"
	"ticketchain/internal/middleware"
	"ticketchain/internal/repository"
	"ticketchain/internal/search"
	"ticketchain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API. Он играет роль секвенсора: каждый
// мутирующий вызов получает аутентифицированного вызывающего и вложенный
// платеж и проходит через леджер строго по одному.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	ledger   *ledger.Ledger
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.Client
	services *service.Services
}

// selfCustodySink settles withdrawals in place when no payout gateway is
// configured: the transfer is considered delivered to the administrator
// out-of-band.
type selfCustodySink struct{}

func (selfCustodySink) Transfer(ctx context.Context, recipient string, amount int64) error {
	slog.Info("Settled withdrawal in self-custody mode", "recipient", recipient, "amount", amount)
	return nil
}

// NewServer создает новый экземпляр сервера. Внешние коллабораторы
// (архив, поиск, кеш, шина событий) опциональны: без них леджер работает
// автономно.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	ldg := ledger.New(ledger.Config{
		Admin:  cfg.Admin,
		Name:   cfg.LedgerName,
		Symbol: cfg.LedgerSymbol,
	})

	collab := service.Collaborators{}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Warn("Archive database unavailable, running without archive", "error", err)
	} else {
		if err := db.RunMigrations(); err != nil {
			slog.Warn("Failed to run archive migrations, running without archive", "error", err)
			db.Close()
			db = nil
		} else {
			repos := repository.NewRepositories(db)
			collab.Occasions = repos.Occasions
			collab.Sales = repos.Sales
		}
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		slog.Warn("NATS unavailable, running without event publishing", "error", err)
		natsClient = nil
	} else {
		collab.Publisher = natsClient
	}

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		slog.Warn("Elasticsearch unavailable, running without search", "error", err)
	} else {
		collab.Search = esClient
	}

	cacheClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without listing cache", "error", err)
		cacheClient = nil
	} else {
		collab.Cache = cacheClient
	}

	var sink ledger.FundSink = selfCustodySink{}
	if cfg.Payout.BaseURL != "" {
		sink = external.NewPayoutClient(cfg.Payout)
	}

	services := service.NewServices(ldg, collab, sink)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		ledger:   ldg,
		db:       db,
		nats:     natsClient,
		cache:    cacheClient,
		services: services,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.cache)

	api := s.router.Group("/api")
	// Каждый вызов несет аутентифицированную личность вызывающего
	api.Use(middleware.CallerIdentity())
	{
		api.GET("/info", h.Info)
		api.GET("/balance", h.Balance)
		api.POST("/withdraw", h.Withdraw)

		occasions := api.Group("/occasions")
		{
			occasions.POST("", h.CreateOccasion)
			occasions.GET("", h.ListOccasions)
			occasions.GET("/:id", h.GetOccasion)
			occasions.POST("/:id/mint", h.Mint)
			occasions.GET("/:id/seats", h.SeatsTaken)
			occasions.GET("/:id/seats/:seat", h.SeatTaken)
			occasions.GET("/:id/buyers/:identity", h.HasBought)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ticketchain-api",
		"ledger":  s.ledger.Name(),
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing Redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
