// Package web exposes the current todo list over HTTP: read the snapshot,
// request a refresh, report health.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/todosync/notion-todo/pkg/todo"
)

// TodoList is what the handlers need from the coordinator.
type TodoList interface {
	Items() ([]todo.Item, bool)
	Refresh(ctx context.Context) error
	ReauthRequired() bool
	LastError() error
	LastRefreshed() time.Time
}

type Handlers struct {
	logger *slog.Logger
	list   TodoList
	source string
}

func NewHandlers(logger *slog.Logger, list TodoList, source string) *Handlers {
	return &Handlers{
		logger: logger,
		list:   list,
		source: source,
	}
}

// GetItems returns the current snapshot, or a problem response while the
// source is unavailable.
func (h *Handlers) GetItems(c fiber.Ctx) error {
	items, available := h.list.Items()
	if !available {
		return h.unavailableProblem(c)
	}

	if items == nil {
		items = []todo.Item{}
	}

	return c.JSON(fiber.Map{
		"source":         h.source,
		"count":          len(items),
		"items":          items,
		"last_refreshed": h.list.LastRefreshed(),
	})
}

// RequestRefresh runs a refresh cycle immediately instead of waiting for
// the next scheduled poll.
func (h *Handlers) RequestRefresh(c fiber.Ctx) error {
	if err := h.list.Refresh(c.Context()); err != nil {
		h.logger.Error("Requested refresh failed", "error", err)

		return handleRefreshError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck reports whether the last refresh succeeded.
func (h *Handlers) HealthCheck(c fiber.Ctx) error {
	_, available := h.list.Items()

	status := "healthy"
	message := "notion-todo is healthy"
	httpStatus := http.StatusOK

	if !available {
		status = "unhealthy"
		message = "last refresh failed or none completed yet"
		httpStatus = http.StatusServiceUnavailable
	}

	body := fiber.Map{
		"status":  status,
		"message": message,
		"source":  h.source,
	}

	if err := h.list.LastError(); err != nil {
		body["error"] = err.Error()
	}

	return c.Status(httpStatus).JSON(body)
}

func (h *Handlers) unavailableProblem(c fiber.Ctx) error {
	if h.list.ReauthRequired() {
		return unauthorized(c, "Notion rejected the configured token; reauthorize the integration")
	}

	detail := "no refresh has completed yet"
	if err := h.list.LastError(); err != nil {
		detail = err.Error()
	}

	return unavailable(c, detail)
}
