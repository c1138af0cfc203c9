// Package service exposes the catalog operations the interaction router
// calls into: upload, search, control activation, summary, item lookup,
// and delete. Every operation is terminal for its request: it either
// fully applies or returns a typed error with no state change.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/ingest"
	"github.com/leapstack-labs/itemdex/internal/search"
	"github.com/leapstack-labs/itemdex/internal/view"
)

// ParseStats aggregates per-line ingestion outcomes.
type ParseStats = ingest.Stats

// Options configures a Service.
type Options struct {
	// MatchLimit is the too-broad threshold (search.DefaultLimit when 0).
	MatchLimit int

	// PageSize is results per page (view.DefaultPageSize when 0).
	PageSize int

	// Logger is optional; a discard logger is used when nil.
	Logger *slog.Logger
}

// Service wires the store, query engine and renderer together.
type Service struct {
	store      *catalog.Store
	engine     *search.Engine
	matchLimit int
	pageSize   int
	logger     *slog.Logger
}

// New creates a Service over the given store.
func New(store *catalog.Store, opts Options) *Service {
	if opts.MatchLimit <= 0 {
		opts.MatchLimit = search.DefaultLimit
	}
	if opts.PageSize <= 0 {
		opts.PageSize = view.DefaultPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:      store,
		engine:     search.NewEngine(store),
		matchLimit: opts.MatchLimit,
		pageSize:   opts.PageSize,
		logger:     logger,
	}
}

// ReplaceResult reports a completed catalog replacement.
type ReplaceResult struct {
	IngestionID string `json:"ingestion_id"`
	Scanned     int    `json:"scanned"`
	Accepted    int    `json:"accepted"`
	Rejected    int    `json:"rejected"`
	Warning     string `json:"warning,omitempty"`
}

// Upload validates and parses uploaded file content, then atomically
// replaces the tenant's catalog. Filename and size limits are the
// caller's concern; content is judged on its own.
func (s *Service) Upload(ctx context.Context, tenantID string, content []byte) (*ReplaceResult, error) {
	text := string(content)

	verdict := ingest.Validate(text)
	if !verdict.Valid {
		return nil, &ValidationError{Reason: verdict.Reason}
	}

	records, stats := ingest.Parse(text)
	if stats.Accepted == 0 {
		return nil, &EmptyResultError{Stats: stats}
	}

	s.store.Replace(tenantID, records)

	res := &ReplaceResult{
		IngestionID: uuid.NewString(),
		Scanned:     stats.Scanned,
		Accepted:    stats.Accepted,
		Rejected:    stats.Rejected,
		Warning:     verdict.Warning,
	}
	s.logger.InfoContext(ctx, "catalog replaced",
		"tenant", tenantID,
		"ingestion_id", res.IngestionID,
		"accepted", stats.Accepted,
		"rejected", stats.Rejected)
	return res, nil
}

// Search runs a query and renders the requested page (default 1).
func (s *Service) Search(ctx context.Context, tenantID, query string, cat catalog.Category, page int) (*view.Page, error) {
	matches, err := s.query(ctx, tenantID, query, cat)
	if err != nil {
		return nil, err
	}
	p := view.Render(matches, page, s.pageSize, view.Context{Query: query, Category: cat})
	return &p, nil
}

// Activation is the outcome of a control activation. NoOp means the
// activation was acknowledged but the page did not change, so nothing
// was re-rendered.
type Activation struct {
	NoOp bool
	Page *view.Page
}

// Activate handles a navigation control activation. The control id and
// the page-indicator label are the only state carried between renders;
// both are untrusted and parsed strictly. The query re-runs against the
// live catalog and total pages is recomputed from the live match count,
// so bounds follow the data even when the catalog changed since the
// originating render.
func (s *Service) Activate(ctx context.Context, tenantID, controlID, indicatorLabel string) (*Activation, error) {
	action, vc, err := view.DecodeControlID(controlID)
	if err != nil {
		return nil, err
	}
	current, _, err := view.ParseIndicator(indicatorLabel)
	if err != nil {
		return nil, err
	}

	matches, err := s.query(ctx, tenantID, vc.Query, vc.Category)
	if err != nil {
		return nil, err
	}

	totalPages := (len(matches) + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	target := view.Transition(action, current, totalPages)
	if target == current {
		s.logger.DebugContext(ctx, "navigation no-op",
			"tenant", tenantID, "action", string(action), "page", current)
		return &Activation{NoOp: true}, nil
	}

	p := view.Render(matches, target, s.pageSize, vc)
	return &Activation{Page: &p}, nil
}

// Summary describes a tenant's catalog: total and per-kind counts plus
// up to five sample entries in catalog insertion order.
type Summary struct {
	Total   int            `json:"total"`
	Seeds   int            `json:"seeds"`
	Blocks  int            `json:"blocks"`
	Samples []search.Match `json:"samples,omitempty"`
}

const summarySamples = 5

// Info returns the tenant's catalog summary.
func (s *Service) Info(_ context.Context, tenantID string) (*Summary, error) {
	c, ok := s.store.Get(tenantID)
	if !ok {
		return nil, &NotFoundError{TenantID: tenantID}
	}

	sum := &Summary{Total: c.Len()}
	for _, id := range c.IDs() {
		name, _ := c.Name(id)
		if catalog.Classify(name) == catalog.KindSeed {
			sum.Seeds++
		} else {
			sum.Blocks++
		}
		if len(sum.Samples) < summarySamples {
			sum.Samples = append(sum.Samples, search.Match{ID: id, Name: name})
		}
	}
	return sum, nil
}

// ItemInfo is a single-item lookup result with its heuristic kind.
type ItemInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Lookup returns one item by id.
func (s *Service) Lookup(_ context.Context, tenantID string, id int) (*ItemInfo, error) {
	m, kind, err := s.engine.Lookup(tenantID, id)
	switch err {
	case nil:
	case catalog.ErrNoCatalog:
		return nil, &NotFoundError{TenantID: tenantID}
	case search.ErrItemNotFound:
		return nil, &NotFoundError{TenantID: tenantID, ItemID: id, Item: true}
	default:
		return nil, err
	}
	return &ItemInfo{ID: m.ID, Name: m.Name, Kind: kind.String()}, nil
}

// Delete removes the tenant's catalog. Admin only.
func (s *Service) Delete(ctx context.Context, tenantID string, isAdmin bool) error {
	if !isAdmin {
		return &PermissionError{Op: "catalog delete"}
	}
	if !s.store.Delete(tenantID) {
		return &NotFoundError{TenantID: tenantID}
	}
	s.logger.InfoContext(ctx, "catalog deleted", "tenant", tenantID)
	return nil
}

// query runs the engine and applies the too-broad policy.
func (s *Service) query(_ context.Context, tenantID, raw string, cat catalog.Category) ([]search.Match, error) {
	matches, err := s.engine.Query(tenantID, raw, cat, s.matchLimit)
	if err == catalog.ErrNoCatalog {
		return nil, &NotFoundError{TenantID: tenantID}
	}
	if err != nil {
		return nil, err
	}
	if len(matches) >= s.matchLimit {
		return nil, &TooManyMatchesError{Query: raw, Limit: s.matchLimit}
	}
	return matches, nil
}
