package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/parthhpatil200/inventory-manager/internal/middleware"
	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/logger"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReceivingHandler serves goods-receiving (stock-in) ledger entry.
type ReceivingHandler struct {
	Store *store.Store
}

func NewReceivingHandler(s *store.Store) *ReceivingHandler {
	return &ReceivingHandler{Store: s}
}

// CreateReceiving recomputes the line totals server-side and appends one
// immutable receiving row. Duplicate lines are allowed.
func (h *ReceivingHandler) CreateReceiving(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req store.LineInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	line, err := h.Store.SaveReceiving(userID, req)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			log.Warn("Invalid receiving line", zap.String("field", verr.Field))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		}
		log.Error("Failed to save receiving line", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save receiving"})
	}

	prometheus.RecordLedgerLine("receiving")
	log.Info("Receiving saved",
		zap.Uint("line_id", line.ID),
		zap.String("supplier", line.Supplier),
		zap.String("product_sku", line.ProductSKU),
		zap.String("total_amount", line.TotalAmount.String()))
	return c.JSON(http.StatusCreated, line)
}

// ListReceivings returns the account's receiving history, most recent first.
func (h *ReceivingHandler) ListReceivings(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	lines, err := h.Store.ListReceivings(userID)
	if err != nil {
		log.Error("Failed to list receivings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve receivings"})
	}

	return c.JSON(http.StatusOK, lines)
}
