package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/todosync/notion-todo/pkg/notion"
)

func unauthorized(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(401).
		WithInstance(c.Path()).
		WithType("authentication_error").
		WithDetail(detail)

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func unavailable(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(503).
		WithInstance(c.Path()).
		WithType("source_unavailable").
		WithDetail(detail)

	return c.Status(fiber.StatusServiceUnavailable).JSON(problem)
}

func tooManyRequests(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(429).
		WithInstance(c.Path()).
		WithType("rate_limited").
		WithDetail(detail)

	return c.Status(fiber.StatusTooManyRequests).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleRefreshError maps fetcher-level errors onto problem responses.
func handleRefreshError(c fiber.Ctx, err error) error {
	switch {
	case notion.IsAuthenticationError(err):
		return unauthorized(c, "Notion rejected the configured token; reauthorize the integration")
	case notion.IsNotFoundError(err):
		return notFound(c, "configured database or data source does not resolve")
	case notion.IsRateLimitError(err):
		return tooManyRequests(c, "Notion is rate limiting requests; retry later")
	case notion.IsCommunicationError(err):
		return unavailable(c, err.Error())
	default:
		return internalError(c, err)
	}
}
