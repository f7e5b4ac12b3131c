package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/jwtutil"
	"github.com/parthhpatil200/inventory-manager/pkg/logger"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves login and signup.
type AuthHandler struct {
	Store *store.Store
}

func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{Store: s}
}

func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Store.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			// One message for unknown user and wrong password alike.
			log.Warn("Login failed", zap.String("username", req.Username))
			prometheus.RecordAuthError("invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Login query failed", zap.Error(err))
		prometheus.RecordAuthError("store_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("username", user.Username))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req store.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.Store.Register(req)
	if err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Warn("Invalid registration data", zap.String("field", verr.Field))
			prometheus.RecordAuthError("invalid_registration")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			log.Warn("Account already exists", zap.String("username", req.Username))
			prometheus.RecordAuthError("duplicate_identity")
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		default:
			log.Error("Failed to create user", zap.Error(err))
			prometheus.RecordAuthError("user_creation_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
	}

	log.Info("User registered", zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Account created successfully",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
