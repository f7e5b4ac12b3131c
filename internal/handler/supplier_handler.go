package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/parthhpatil200/inventory-manager/internal/events"
	"github.com/parthhpatil200/inventory-manager/internal/middleware"
	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/logger"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierHandler serves the supplier master registry.
type SupplierHandler struct {
	Store *store.Store
	Bus   *events.Bus
}

func NewSupplierHandler(s *store.Store, bus *events.Bus) *SupplierHandler {
	return &SupplierHandler{Store: s, Bus: bus}
}

func (h *SupplierHandler) ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	suppliers, err := h.Store.ListSuppliers(userID)
	if err != nil {
		log.Error("Failed to list suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve suppliers"})
	}

	prometheus.RecordRegistryOperation("supplier", "list")
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req store.PartnerInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	supplier, err := h.Store.SaveSupplier(userID, req)
	if err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Warn("Invalid supplier data", zap.String("field", verr.Field))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			log.Warn("Supplier name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{"error": "supplier name already exists"})
		default:
			log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create supplier"})
		}
	}

	prometheus.RecordRegistryOperation("supplier", "create")
	h.Bus.Publish(events.Event{Name: events.SupplierRegistered, UserID: userID, Payload: supplier.Name})

	log.Info("Supplier created", zap.Uint("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}
