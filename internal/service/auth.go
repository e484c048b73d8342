package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/water-shop/internal/domain/models"
	security "github.com/linemk/water-shop/internal/jwt-new"
	"github.com/linemk/water-shop/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// Register создаёт нового пользователя и сразу выдаёт JWT-токен.
// Пароль хэшируется через bcrypt (автоматически добавляет соль).
// Повторная регистрация на занятый email возвращает storage.ErrEmailTaken.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	const op = "auth.Register"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			logger.Warn("email already taken")
			return nil, "", fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered successfully", slog.Int64("userID", user.ID))
	return user, token, nil
}

// Login осуществляет аутентификацию: введённый пароль сравнивается
// с сохранённым хэшем, после чего генерируется JWT-токен
// (секрет для подписи берётся из переменной окружения).
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return user, token, nil
}

// GetUser возвращает пользователя по идентификатору из токена (для /api/me)
func (a *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "auth.GetUser"

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		a.log.Error("failed to get user by id", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
