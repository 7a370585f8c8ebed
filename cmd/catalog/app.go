package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-catalog-engine/internal/catalog"
	"go-catalog-engine/internal/config"
	"go-catalog-engine/internal/events"
	"go-catalog-engine/internal/graph"
	"go-catalog-engine/internal/handler"
	"go-catalog-engine/internal/index"
	"go-catalog-engine/internal/repository"
	"go-catalog-engine/internal/service"
	"go-catalog-engine/pkg/database"
	"go-catalog-engine/pkg/logger"
)

// app is the wired process: stores, engine, services and the command handler.
type app struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	db     *gorm.DB
	hub    *events.Hub
	carts  service.CartService
	// restored is set once the persisted cart is loaded; until then Close
	// must not overwrite it.
	restored bool
	handler  *handler.CommandHandler
	stop     context.CancelFunc
}

func newApp(ctx context.Context) (*app, error) {
	// 1. Load config
	cfg, envLoaded, err := config.Load()
	if err != nil {
		return nil, err
	}

	// 2. Logger
	zl, err := logger.Stderr(cfg.Debug)
	if err != nil {
		return nil, err
	}
	log := zl.Sugar()
	if !envLoaded {
		log.Debug(".env file not found, using process environment")
	}

	a := &app{cfg: cfg, logger: log}

	// 3. Stores
	var (
		productRepo repository.ProductRepository
		cartRepo    repository.CartRepository
		receiptRepo repository.ReceiptRepository
	)
	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.ConnectDB(cfg.DSN(), zl, cfg.Debug)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		productRepo = repository.NewProductRepo(db)
		cartRepo = repository.NewCartRepo(db)
		receiptRepo = repository.NewReceiptRepo(db)
	default:
		productRepo = repository.NewProductFileRepo(cfg.Path(cfg.ProductsFile), log)
		cartRepo = repository.NewCartFileRepo(cfg.Path(cfg.CartFile), log)
		receiptRepo = repository.NewReceiptFileRepo(cfg.Path(cfg.ReceiptsFile))
	}

	// 4. Co-purchase graph
	g, err := loadGraph(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Infow("co-purchase graph loaded", "products", g.Len())

	// 5. Event hub
	runCtx, cancel := context.WithCancel(ctx)
	a.stop = cancel
	a.hub = events.NewHub()
	go a.hub.Run(runCtx)
	sub := make(events.Subscriber, 16)
	a.hub.Register <- sub
	go logEvents(sub, log)

	// 6. Services (wiring layers)
	c := catalog.New()
	catalogService := service.NewCatalogService(c, index.NewPrefixIndex(), g, productRepo, a.hub, log, service.CatalogOptions{
		MaxRecommendations: cfg.MaxRecommendations,
		LowStockThreshold:  cfg.LowStockThreshold,
	})
	a.carts = service.NewCartService(c, cartRepo, productRepo, receiptRepo, a.hub, log)

	if err := catalogService.Reload(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.carts.Restore(); err != nil {
		a.Close()
		return nil, err
	}
	a.restored = true

	a.handler = handler.NewCommandHandler(catalogService, a.carts, service.NewDashboardService(receiptRepo), log)
	return a, nil
}

// loadGraph starts from the configured YAML seed, or the built-in one, and
// adds the optional pipe-delimited pair file on top.
func loadGraph(cfg *config.Config) (*graph.CoPurchaseGraph, error) {
	g := graph.NewCoPurchaseGraph()

	var edges []graph.Edge
	var err error
	if cfg.GraphSeedFile != "" {
		edges, err = readEdges(cfg.Path(cfg.GraphSeedFile), graph.LoadYAML)
	} else {
		edges, err = graph.DefaultEdges()
	}
	if err != nil {
		return nil, fmt.Errorf("load graph seed: %w", err)
	}
	g.AddEdges(edges)

	if cfg.RecommendationsFile != "" {
		extra, err := readEdges(cfg.Path(cfg.RecommendationsFile), graph.LoadPipe)
		if err != nil {
			return nil, fmt.Errorf("load recommendations: %w", err)
		}
		g.AddEdges(extra)
	}
	return g, nil
}

func readEdges(path string, parse func(io.Reader) ([]graph.Edge, error)) ([]graph.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func logEvents(sub events.Subscriber, log *zap.SugaredLogger) {
	for msg := range sub {
		e, err := events.Decode(msg)
		if err != nil {
			log.Warnw("undecodable event", "error", err)
			continue
		}
		log.Infow(e.Message, "type", e.Type, "action", e.Action, "products", len(e.Products))
	}
}

// Close saves the cart (when it was restored), stops the hub and releases the
// database.
func (a *app) Close() {
	if a.restored {
		if err := a.carts.Save(); err != nil {
			a.logger.Errorw("failed to save cart", "error", err)
		}
	}
	if a.stop != nil {
		a.stop()
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Errorw("failed to close database", "error", err)
		}
	}
	a.logger.Sync()
}
