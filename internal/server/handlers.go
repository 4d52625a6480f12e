package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/sbmops/scorecard/pkg/errors"
	"github.com/sbmops/scorecard/pkg/logging"
)

// jsonSuccess returns a 200 response with data wrapped in the standard
// envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

func (s *Server) load(c fiber.Ctx) (*snapshot, error) {
	return s.cache.get(c.Context(), c.Query("month"))
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) dashboard(c fiber.Ctx) error {
	snap, err := s.load(c)
	if err != nil {
		if errors.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "no scorecard data for that month")
		}
		logging.FromContext(c.Context()).Err(err).Msg("loading dashboard data")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load scorecard data")
	}

	avg, _ := snap.Result.AverageScore()
	return c.Render("dashboard", fiber.Map{
		"Title":        s.Cfg.SiteTitle,
		"Month":        snap.Month.String(),
		"Stats":        snap.Result.Metadata.Stats,
		"Accounts":     snap.Result.Accounts,
		"Missing":      snap.Result.Missing(),
		"Unresolved":   snap.Result.Unresolved,
		"AverageScore": avg,
		"Responses":    snap.Result.TotalResponses(),
	})
}

func (s *Server) apiAccounts(c fiber.Ctx) error {
	snap, err := s.load(c)
	if err != nil {
		return s.apiLoadError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"month":    snap.Month.Key(),
		"accounts": snap.Result.Accounts,
	})
}

func (s *Server) apiMissing(c fiber.Ctx) error {
	snap, err := s.load(c)
	if err != nil {
		return s.apiLoadError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"month":    snap.Month.Key(),
		"accounts": snap.Result.Missing(),
	})
}

func (s *Server) apiDiagnostics(c fiber.Ctx) error {
	snap, err := s.load(c)
	if err != nil {
		return s.apiLoadError(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"month":      snap.Month.Key(),
		"unresolved": snap.Result.Unresolved,
		"warnings":   snap.Result.Warnings,
		"metadata":   snap.Result.Metadata,
	})
}

func (s *Server) apiLoadError(c fiber.Ctx, err error) error {
	if errors.IsNotFound(err) {
		return jsonError(c, fiber.StatusNotFound, "no scorecard data for that month")
	}
	logging.FromContext(c.Context()).Err(err).Msg("loading scorecard data")
	return jsonError(c, fiber.StatusInternalServerError, "failed to load scorecard data")
}
