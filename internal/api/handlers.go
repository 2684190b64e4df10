package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/vijay-prabhu/jobboard/internal/errors"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

const msgInternal = "Internal server error"

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	debug := parseBool(query.Get("debug"))

	limit := parseLimit(query.Get("limit"))

	result, err := s.engine.FindSimilar(r.Context(), r.PathValue("id"), similarity.Options{
		Limit: limit,
		Debug: debug,
	})
	if err != nil {
		s.writeError(w, err, debug)
		return
	}

	message := fmt.Sprintf("Found %d similar jobs", len(result.Records))
	if len(result.Records) == 0 {
		message = "No similar jobs found"
	}

	writeJSON(w, http.StatusOK, envelope{
		Success:  true,
		Message:  message,
		Data:     result.Records,
		Metadata: &result.Metadata,
		Debug:    result.Debug,
	})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	debug := parseBool(r.URL.Query().Get("debug"))

	job, err := s.engine.Job(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, debug)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Job retrieved", Data: job})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Health(r.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			s.writeError(w, apperrors.Unavailable("unavailable", err), false)
			return
		}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
}

// writeError maps err onto the response taxonomy. Internal detail is only
// exposed when the caller asked for debug output.
func (s *Server) writeError(w http.ResponseWriter, err error, debug bool) {
	status := apperrors.HTTPStatus(err)

	if status != http.StatusInternalServerError {
		writeJSON(w, status, envelope{Success: false, Message: apperrors.PublicMessage(err, http.StatusText(status))})
		return
	}

	fields := []zap.Field{zap.Error(err)}
	var de *apperrors.DomainError
	if errors.As(err, &de) && len(de.StackTrace()) > 0 {
		fields = append(fields, zap.ByteString("stack", de.StackTrace()))
	}
	s.logger.Error("request failed", fields...)

	body := envelope{Success: false, Message: msgInternal, Error: "unexpected error"}
	if debug {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// parseLimit reads the limit query parameter. Non-numeric values fall back
// to the default and out-of-range values saturate; the engine clamps the rest.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return limit
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(raw, "-"):
		return math.MinInt
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	default:
		return 0
	}
}
