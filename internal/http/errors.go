package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleError renders every failure as {"error": ..., "code": ...}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.errorBody(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		s.logger.Warn("failed to write error response", zap.Error(writeErr))
	}
}

func (s *Server) errorBody(err error) (int, ErrorResponse) {
	var (
		he   *echo.HTTPError
		rerr *app.ReflectError
		verr *app.ValidationError
	)
	switch {
	case errors.As(err, &rerr):
		status := http.StatusInternalServerError
		switch rerr.Code {
		case app.ReflectErrInvalidArgument:
			status = http.StatusBadRequest
		case app.ReflectErrUpstreamUnavailable:
			status = http.StatusServiceUnavailable
		}
		return status, ErrorResponse{Error: rerr.Message, Code: string(rerr.Code), Source: rerr.Source}
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: string(app.ReflectErrInvalidArgument)}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found", Code: "NOT_FOUND"}
	case errors.As(err, &he):
		return he.Code, ErrorResponse{Error: fmt.Sprint(he.Message)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "INTERNAL"}
	}
}
