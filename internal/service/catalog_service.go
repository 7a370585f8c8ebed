package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-catalog-engine/internal/catalog"
	"go-catalog-engine/internal/events"
	"go-catalog-engine/internal/graph"
	"go-catalog-engine/internal/index"
	"go-catalog-engine/internal/model"
	"go-catalog-engine/internal/repository"
	"go-catalog-engine/pkg/validator"
)

type CatalogService interface {
	Reload() error
	Get(name string) (model.Product, bool)
	Search(prefix string) []model.Product
	SearchFiltered(prefix string, f model.ProductFilters) []model.Product
	SearchInCategory(category, query string) []model.Product
	ListCategory(category string) []model.Product
	ListAll() []model.Product
	ListFiltered(f model.ProductFilters) []model.Product
	Recommend(name string, maxResults int) []model.Product
	Stats() catalog.Stats
	SaveProduct(p *model.Product) (model.Product, error)
	AdjustStock(name string, delta int) (model.Product, error)
}

type CatalogOptions struct {
	MaxRecommendations int
	LowStockThreshold  int
}

type catalogService struct {
	catalog     *catalog.Catalog
	index       *index.PrefixIndex
	graph       *graph.CoPurchaseGraph
	productRepo repository.ProductRepository
	wsHub       *events.Hub
	logger      *zap.SugaredLogger
	opts        CatalogOptions
}

func NewCatalogService(
	c *catalog.Catalog,
	idx *index.PrefixIndex,
	g *graph.CoPurchaseGraph,
	productRepo repository.ProductRepository,
	hub *events.Hub,
	logger *zap.SugaredLogger,
	opts CatalogOptions,
) CatalogService {
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = graph.DefaultMaxRecommendations
	}
	return &catalogService{
		catalog:     c,
		index:       idx,
		graph:       g,
		productRepo: productRepo,
		wsHub:       hub,
		logger:      logger,
		opts:        opts,
	}
}

// Reload replaces the catalog with the repository contents and indexes every
// name. The index is insert-only, so names that disappeared stay searchable
// but no longer resolve.
func (s *catalogService) Reload() error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	if skipped := s.catalog.Replace(products); skipped > 0 {
		s.logger.Warnw("skipped invalid product records", "skipped", skipped)
	}
	for _, p := range s.catalog.All() {
		s.index.Insert(p.Name)
	}
	s.logger.Infow("catalog loaded", "products", s.catalog.Len(), "indexed", s.index.Len())
	return nil
}

func (s *catalogService) Get(name string) (model.Product, bool) {
	return s.catalog.Get(name)
}

// resolve maps names back to live records, dropping unknown ones.
func (s *catalogService) resolve(names []string) []model.Product {
	out := make([]model.Product, 0, len(names))
	for _, n := range names {
		if p, ok := s.catalog.Get(n); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *catalogService) Search(prefix string) []model.Product {
	return s.resolve(s.index.Autocomplete(prefix))
}

func (s *catalogService) SearchFiltered(prefix string, f model.ProductFilters) []model.Product {
	matched := s.catalog.ApplyFilters(s.Search(prefix), f)
	return catalog.Sort(matched, f.Sort)
}

// SearchInCategory matches the category ignoring case and the query as a
// case-insensitive substring of the name.
func (s *catalogService) SearchInCategory(category, query string) []model.Product {
	query = strings.ToLower(query)
	var out []model.Product
	for _, p := range s.catalog.ByCategory(category) {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

func (s *catalogService) ListCategory(category string) []model.Product {
	return s.catalog.ByCategory(category)
}

func (s *catalogService) ListAll() []model.Product {
	return s.catalog.All()
}

func (s *catalogService) ListFiltered(f model.ProductFilters) []model.Product {
	matched := s.catalog.ApplyFilters(s.catalog.All(), f)
	return catalog.Sort(matched, f.Sort)
}

// Recommend returns co-purchased products that are still in the catalog.
// maxResults <= 0 uses the configured default.
func (s *catalogService) Recommend(name string, maxResults int) []model.Product {
	if maxResults <= 0 {
		maxResults = s.opts.MaxRecommendations
	}
	return s.resolve(s.graph.Recommendations(name, maxResults))
}

func (s *catalogService) Stats() catalog.Stats {
	return s.catalog.Stats(s.opts.LowStockThreshold)
}

// SaveProduct validates and upserts a product, then persists the catalog.
func (s *catalogService) SaveProduct(p *model.Product) (model.Product, error) {
	if err := validator.Check(p); err != nil {
		return model.Product{}, err
	}
	old, existed := s.catalog.Get(p.Name)
	saved, err := s.catalog.Put(*p)
	if err != nil {
		return model.Product{}, err
	}
	s.index.Insert(saved.Name)
	s.persist()

	level := events.StockLevel{Name: saved.Name, NewStock: saved.Stock}
	if existed {
		level.OldStock = old.Stock
	}
	s.broadcast(events.NewStockEvent(events.ActionProductSaved, fmt.Sprintf("product '%s' saved", saved.Name), level))
	return saved, nil
}

// AdjustStock applies a signed stock change, rejecting one that would make
// stock negative.
func (s *catalogService) AdjustStock(name string, delta int) (model.Product, error) {
	p, err := s.catalog.AdjustStock(name, delta)
	if err != nil {
		return p, err
	}
	s.persist()
	s.broadcast(events.NewStockEvent(
		events.ActionStockAdjusted,
		fmt.Sprintf("stock of '%s' changed by %d", p.Name, delta),
		events.StockLevel{Name: p.Name, OldStock: p.Stock - delta, NewStock: p.Stock},
	))
	return p, nil
}

func (s *catalogService) persist() {
	if err := s.productRepo.SaveAll(s.catalog.All()); err != nil {
		s.logger.Errorw("failed to save products", "error", err)
	}
}

func (s *catalogService) broadcast(e events.StockEvent) {
	publish(s.wsHub, s.logger, e)
}

// publish hands the event to the hub without blocking the caller.
func publish(hub *events.Hub, logger *zap.SugaredLogger, e events.StockEvent) {
	if hub == nil {
		return
	}
	msg, err := e.Encode()
	if err != nil {
		logger.Errorw("failed to encode event", "action", e.Action, "error", err)
		return
	}
	go func() {
		if !hub.Publish(msg) {
			logger.Debugw("event dropped, hub stopped", "action", e.Action)
		}
	}()
}
