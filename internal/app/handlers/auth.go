package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/water-shop/internal/domain/models"
	"github.com/linemk/water-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/water-shop/internal/service"
	"github.com/linemk/water-shop/internal/storage"
)

// RegisterRequest представляет структуру запроса регистрации с тегами валидации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest представляет структуру запроса аутентификации
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userView — проекция пользователя в ответах (без хэша пароля)
type userView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// RegisterHandler обрабатывает запрос POST /api/register
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			respondValidationError(w, logger, err)
			return
		}

		user, token, err := authService.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				respondFieldErrors(w, map[string][]string{
					"email": {"The email has already been taken."},
				})
				return
			}
			logger.Error("registration failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "could not register user")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success":    true,
			"message":    "User successfully registered",
			"user":       newUserView(user),
			"token":      token,
			"token_type": "bearer",
		})
	}
}

// LoginHandler обрабатывает запрос POST /api/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			respondValidationError(w, logger, err)
			return
		}

		user, token, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				respondError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "could not create token")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"message":    "Login successful",
			"user":       newUserView(user),
			"token":      token,
			"token_type": "bearer",
		})
	}
}

// MeHandler обрабатывает запрос GET /api/me — текущий пользователь по токену
func MeHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MeHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := authService.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Error("failed to get user", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    newUserView(user),
		})
	}
}
