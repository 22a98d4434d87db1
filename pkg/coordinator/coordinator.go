// Package coordinator drives the refresh cycle: fetch pages from Notion,
// filter and map them, and publish the result as an atomically replaced
// snapshot.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/todosync/notion-todo/pkg/notion"
	"github.com/todosync/notion-todo/pkg/otelhelper"
	"github.com/todosync/notion-todo/pkg/tasksource"
	"github.com/todosync/notion-todo/pkg/todo"
)

// List is the capability contract the host surface consumes: read the
// current snapshot, trigger a refresh.
type List interface {
	// Items returns the most recently published snapshot and whether the
	// source is currently available.
	Items() ([]todo.Item, bool)

	// Refresh runs one full fetch-filter-map-publish cycle.
	Refresh(ctx context.Context) error
}

// Coordinator polls one task source on a cron schedule and implements List.
// At most one refresh runs at a time; each refresh replaces the previous
// snapshot wholesale.
type Coordinator struct {
	logger *slog.Logger
	client *notion.Client
	source tasksource.Source
	filter todo.Filter

	cron *cron.Cron

	refreshMu sync.Mutex

	mu            sync.RWMutex
	items         []todo.Item
	available     bool
	reauthNeeded  bool
	lastErr       error
	lastRefreshed time.Time
}

func New(logger *slog.Logger, client *notion.Client, source tasksource.Source) *Coordinator {
	return &Coordinator{
		logger: logger,
		client: client,
		source: source,
		filter: todo.NewFilter(source.IncludeStatuses, source.ExcludeStatuses, source.DueWithinDays),
	}
}

// Start runs an initial refresh and schedules periodic ones. A failing
// initial refresh leaves the list unavailable but does not fail Start; the
// next scheduled poll retries.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Error("Initial refresh failed", "error", err)
	}

	c.cron = cron.New()

	_, err := c.cron.AddFunc(c.source.PollSchedule, func() {
		// Rejected credentials are not retried on the schedule; an explicit
		// refresh request retries after the token was fixed.
		if c.ReauthRequired() {
			c.logger.Warn("Skipping scheduled refresh, reauthorization required")

			return
		}

		if err := c.Refresh(context.Background()); err != nil {
			c.logger.Error("Scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.cron.Start()
	c.logger.Info("Coordinator started", "schedule", c.source.PollSchedule)

	return nil
}

// Stop halts the poll schedule and waits for an in-flight refresh job to
// return.
func (c *Coordinator) Stop() {
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}

	c.logger.Info("Coordinator stopped")
}

// Items returns the current snapshot. The boolean is false while the source
// is unavailable (failed last refresh, or never refreshed).
func (c *Coordinator) Items() ([]todo.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items, c.available
}

// ReauthRequired reports whether the last refresh failed with rejected
// credentials. It stays set until a refresh succeeds.
func (c *Coordinator) ReauthRequired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.reauthNeeded
}

// LastError returns the error of the last failed refresh, nil after a
// successful one.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastErr
}

// LastRefreshed returns when the last successful refresh completed.
func (c *Coordinator) LastRefreshed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastRefreshed
}

// Refresh performs one full pass. A fetch-level error aborts the cycle and
// marks the list unavailable; a page that fails mapping is skipped with a
// warning.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	tracer := otel.Tracer("notion-todo/coordinator")
	ctx, span := otelhelper.StartSpan(ctx, tracer, "refresh",
		attribute.String(otelhelper.SourceNameKey, c.source.Name),
		attribute.String(otelhelper.DatabaseIDKey, c.source.DatabaseID),
		attribute.String(otelhelper.DataSourceIDKey, c.source.DataSourceID),
	)
	defer span.End()

	var (
		items   []todo.Item
		fetched int
		skipped int
		now     = time.Now()
	)

	it := c.client.Query(c.source.QueryTarget())
	for it.Next(ctx) {
		page := it.Page()
		fetched++

		if page.Archived || page.InTrash {
			continue
		}

		label := page.Properties[c.source.Properties.Status].StatusName()

		var due *notion.Due
		if c.source.Properties.Due != "" {
			due = page.Properties[c.source.Properties.Due].Due()
		}

		if !c.filter.Match(label, due, now) {
			continue
		}

		item, err := todo.MapPage(page, c.source.Properties)
		if err != nil {
			skipped++
			c.logger.Warn("Skipping page that failed mapping", "page_id", page.ID, "error", err)

			continue
		}

		items = append(items, item)
	}

	if err := it.Err(); err != nil {
		otelhelper.SetError(span, err)
		c.fail(err)

		return err
	}

	todo.SortItems(items)

	span.SetAttributes(
		attribute.Int(otelhelper.PageCountKey, fetched),
		attribute.Int(otelhelper.ItemCountKey, len(items)),
		attribute.Int(otelhelper.SkippedCountKey, skipped),
	)

	c.publish(items)
	c.logger.Debug("Refresh completed", "pages", fetched, "items", len(items), "skipped", skipped)

	return nil
}

func (c *Coordinator) publish(items []todo.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	c.available = true
	c.reauthNeeded = false
	c.lastErr = nil
	c.lastRefreshed = time.Now()
}

func (c *Coordinator) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.available = false
	c.lastErr = err

	if notion.IsAuthenticationError(err) {
		c.reauthNeeded = true
	}
}
