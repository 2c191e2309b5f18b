package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"steward/internal/activity/metrics"
	id "steward/pkg/domain"
)

// DefaultPageSize applies when the caller supplies a non-positive page size.
const DefaultPageSize = 10

// Reader serves paginated, tenant-scoped activity pages. Entity existence
// checks are the owning service's responsibility; the reader only deals in
// envelopes.
type Reader struct {
	store    Store
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type ReaderOption func(*Reader)

func WithLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) ReaderOption {
	return func(r *Reader) { r.metrics = m }
}

func NewReader(store Store, registry *Registry, opts ...ReaderOption) *Reader {
	r := &Reader{store: store, registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetPage returns one page of reconstructed activity for an entity,
// descending by OccurredAt.
//
// page <= 0 normalizes to 1 and pageSize <= 0 to DefaultPageSize. A page
// beyond the last returns an empty item list with the correct page count:
// callers rely on page 1 distinguishing "no rows yet" from "out of range",
// so out-of-range is clamped by skip/take, never rejected.
func (r *Reader) GetPage(ctx context.Context, entityType EntityType, entityID uuid.UUID, tenantID id.TenantID, page, pageSize int) (Page, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := time.Now()

	count, err := r.store.CountByEntity(ctx, entityType, entityID, tenantID)
	if err != nil {
		return Page{}, err
	}

	pageCount := uint((count + pageSize - 1) / pageSize)

	envelopes, err := r.store.ListByEntity(ctx, entityType, entityID, tenantID, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page{}, err
	}

	items := make([]Item, 0, len(envelopes))
	for _, env := range envelopes {
		item, err := r.registry.Reconstruct(env)
		if err != nil {
			// Failing the whole page keeps a deployment/data inconsistency
			// visible instead of quietly omitting audit entries.
			if r.logger != nil {
				r.logger.ErrorContext(ctx, "unrenderable activity envelope",
					"entity_type", entityType,
					"entity_id", entityID,
					"kind", env.Kind,
					"version", env.Version,
					"error", err,
				)
			}
			if r.metrics != nil {
				r.metrics.IncrementUnknownEventShape(string(env.Kind))
			}
			return Page{}, err
		}
		items = append(items, item)
	}

	if r.metrics != nil {
		r.metrics.ObservePageServed(string(entityType), time.Since(start))
	}

	return Page{PageCount: pageCount, Items: items}, nil
}
