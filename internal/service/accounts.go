package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AccountRepo interface {
	SaveUser(ctx context.Context, u entities.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error

	SaveAdmin(ctx context.Context, a entities.Admin) error
	GetAdminByID(ctx context.Context, adminID uuid.UUID) (entities.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (entities.Admin, error)
	ListAdmins(ctx context.Context) ([]entities.Admin, error)
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) error
	CountAdmins(ctx context.Context) (int, error)
}

type accountService struct {
	logger *slog.Logger
	repo   AccountRepo
}

func NewAccountService(logger *slog.Logger, repo AccountRepo) *accountService {
	return &accountService{
		logger: logger.With(slog.String("service", "accounts")),
		repo:   repo,
	}
}

type RegisterInput struct {
	Email       string
	PhoneNumber string
	Password    string
	Location    string
}

func (s *accountService) RegisterUser(ctx context.Context, input RegisterInput) (entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hash),
		Location:     input.Location,
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	s.logger.Debug("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *accountService) LoginUser(ctx context.Context, email, password string) (entities.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return entities.User{}, entities.ErrInvalidCredentials
	}
	if err != nil {
		return entities.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entities.User{}, entities.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return entities.User{}, entities.ErrUserBlocked
	}
	return user, nil
}

func (s *accountService) LoginAdmin(ctx context.Context, email, password string) (entities.Admin, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if errors.Is(err, entities.ErrAdminNotFound) {
		return entities.Admin{}, entities.ErrInvalidCredentials
	}
	if err != nil {
		return entities.Admin{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return entities.Admin{}, entities.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *accountService) GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *accountService) GetAdmin(ctx context.Context, adminID uuid.UUID) (entities.Admin, error) {
	return s.repo.GetAdminByID(ctx, adminID)
}

func (s *accountService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *accountService) SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	return s.repo.SetUserBlocked(ctx, userID, blocked)
}

func (s *accountService) CreateAdmin(ctx context.Context, email, password string, role entities.AdminRole) (entities.Admin, error) {
	if !role.Valid() {
		return entities.Admin{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.Admin{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := entities.Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.SaveAdmin(ctx, admin); err != nil {
		return entities.Admin{}, err
	}

	s.logger.Info("admin created", slog.String("email", email), slog.String("role", string(role)))
	return admin, nil
}

func (s *accountService) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	return s.repo.ListAdmins(ctx)
}

func (s *accountService) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	return s.repo.DeleteAdmin(ctx, adminID)
}

// EnsureSeedAdmin создаёт стартовую учётку SUPER_ADMIN на пустой базе.
func (s *accountService) EnsureSeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateAdmin(ctx, email, password, entities.RoleSuperAdmin)
	return err
}
