package activities

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/metrics"
	"activity-signup/internal/models"
)

const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Handler serves the activity endpoints on top of a Registry.
type Handler struct {
	registry *Registry
	metrics  *metrics.RosterMetrics
	logger   logger.Logger
}

func NewHandler(registry *Registry, m *metrics.RosterMetrics, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		registry: registry,
		metrics:  m,
		logger:   log.WithFields(map[string]interface{}{"component": "activities"}),
	}
}

// Register mounts the activity routes on e.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/activities")
	g.GET("", h.List)
	g.GET("/:name", h.Get)
	g.POST("/:name/signup", h.Signup)
	g.DELETE("/:name/participants", h.Unregister)
}

// List handles GET /activities.
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.List())
}

// Get handles GET /activities/:name.
func (h *Handler) Get(c echo.Context) error {
	name := activityName(c)
	view, err := h.registry.Get(name)
	if err != nil {
		return h.toStandardError("get", name, "", err)
	}
	return c.JSON(http.StatusOK, view)
}

// Signup handles POST /activities/:name/signup?email=.
// Any non-blank email is accepted; addresses are not format-checked.
func (h *Handler) Signup(c echo.Context) error {
	name := activityName(c)
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		h.metrics.RecordRejection(opSignup, string(apperrors.ErrCodeEmailRequired))
		return apperrors.NewEmailRequiredError(name)
	}

	if err := h.registry.Signup(c.Request().Context(), name, email); err != nil {
		return h.toStandardError(opSignup, name, email, err)
	}

	h.logger.Info("participant signed up", map[string]interface{}{
		"activity": name,
		"email":    email,
	})
	return c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

// Unregister handles DELETE /activities/:name/participants?email=.
func (h *Handler) Unregister(c echo.Context) error {
	name := activityName(c)
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		h.metrics.RecordRejection(opUnregister, string(apperrors.ErrCodeEmailRequired))
		return apperrors.NewEmailRequiredError(name)
	}

	if err := h.registry.Unregister(c.Request().Context(), name, email); err != nil {
		return h.toStandardError(opUnregister, name, email, err)
	}

	h.logger.Info("participant unregistered", map[string]interface{}{
		"activity": name,
		"email":    email,
	})
	return c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

func (h *Handler) toStandardError(op, name, email string, err error) error {
	var stdErr *apperrors.StandardError
	switch {
	case errors.Is(err, ErrActivityNotFound):
		stdErr = apperrors.NewActivityNotFoundError(name)
	case errors.Is(err, ErrParticipantNotFound):
		stdErr = apperrors.NewParticipantNotFoundError(name, email)
	case errors.Is(err, ErrAlreadyRegistered):
		stdErr = apperrors.NewAlreadyRegisteredError(name, email)
	case errors.Is(err, ErrActivityFull):
		view, _ := h.registry.Get(name)
		stdErr = apperrors.NewActivityFullError(name, view.MaxParticipants)
	default:
		stdErr = apperrors.NewInternalError(err)
	}
	if op != "get" {
		h.metrics.RecordRejection(op, string(stdErr.Code))
	}
	return stdErr
}

// activityName returns the decoded :name path parameter. echo routes on
// URL.RawPath when it is set, leaving params escaped; otherwise they come
// from the already decoded URL.Path.
func activityName(c echo.Context) string {
	raw := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
