package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
	"github.com/swvikum/cake-bucket-sync/internal/core/port"
	"github.com/swvikum/cake-bucket-sync/internal/metrics"
)

const (
	defaultDaysBack  = 30
	defaultDaysAhead = 365
)

// CalendarSyncHandler triggers a sync run over HTTP, guarded by the shared
// cron secret. The scheduler platform presents it either as a bearer token
// or in the X-Cron-Secret header.
type CalendarSyncHandler struct {
	syncService port.SyncService
	cronSecret  string
	validate    *validator.Validate
}

type SyncRequest struct {
	DaysBack  int `json:"daysBack" validate:"min=0,max=3650"`
	DaysAhead int `json:"daysAhead" validate:"min=0,max=3650"`
}

type SyncResponse struct {
	OK          bool     `json:"ok"`
	Created     int      `json:"created"`
	Skipped     int      `json:"skipped"`
	TotalEvents int      `json:"totalEvents"`
	Errors      []string `json:"errors,omitempty"`
}

func NewCalendarSyncHandler(syncService port.SyncService, cronSecret string, validate *validator.Validate) *CalendarSyncHandler {
	return &CalendarSyncHandler{
		syncService: syncService,
		cronSecret:  cronSecret,
		validate:    validate,
	}
}

func (h *CalendarSyncHandler) Handle() echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.authorized(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
		}

		// The body is optional; a missing or malformed one means defaults.
		var req SyncRequest
		if err := c.Bind(&req); err != nil {
			req = SyncRequest{}
		}
		if err := h.validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "daysBack and daysAhead must be between 0 and 3650",
			})
		}
		if req.DaysBack == 0 {
			req.DaysBack = defaultDaysBack
		}
		if req.DaysAhead == 0 {
			req.DaysAhead = defaultDaysAhead
		}

		report, err := h.syncService.Run(c.Request().Context(), req.DaysBack, req.DaysAhead)
		metrics.RecordSyncRun("http", err == nil)
		if err != nil {
			log.WithError(err).Error("Calendar sync run failed")

			var authErr *domain.AuthError
			if errors.As(err, &authErr) && authErr.NotConnected {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"error": authErr.Error(),
				})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": err.Error(),
			})
		}

		metrics.ObserveReport(report)

		return c.JSON(http.StatusOK, SyncResponse{
			OK:          true,
			Created:     report.Created,
			Skipped:     report.Skipped,
			TotalEvents: report.TotalEvents,
			Errors:      report.Errors,
		})
	}
}

func (h *CalendarSyncHandler) authorized(c echo.Context) bool {
	// An unset secret rejects everything rather than opening the endpoint.
	if h.cronSecret == "" {
		return false
	}

	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ") == h.cronSecret
	}

	return c.Request().Header.Get("X-Cron-Secret") == h.cronSecret
}
