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

// SaleHandler serves sales (stock-out) ledger entry.
type SaleHandler struct {
	Store *store.Store
}

func NewSaleHandler(s *store.Store) *SaleHandler {
	return &SaleHandler{Store: s}
}

// CreateSale recomputes the line totals server-side and appends one
// immutable sale row. Duplicate lines are allowed.
func (h *SaleHandler) CreateSale(c echo.Context) error {
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
	line, err := h.Store.SaveSale(userID, req)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			log.Warn("Invalid sale line", zap.String("field", verr.Field))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		}
		log.Error("Failed to save sale line", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save sale"})
	}

	prometheus.RecordLedgerLine("sale")
	log.Info("Sale saved",
		zap.Uint("line_id", line.ID),
		zap.String("customer", line.Customer),
		zap.String("product_sku", line.ProductSKU),
		zap.String("total_amount", line.TotalAmount.String()))
	return c.JSON(http.StatusCreated, line)
}

// ListSales returns the account's sales history, most recent first, with
// each line's SKU resolved to the product's current display name.
func (h *SaleHandler) ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	rows, err := h.Store.ListSales(userID)
	if err != nil {
		log.Error("Failed to list sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales"})
	}

	return c.JSON(http.StatusOK, rows)
}
