package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type accountAPI interface {
	RegisterUser(ctx context.Context, input service.RegisterInput) (entities.User, error)
	LoginUser(ctx context.Context, email, password string) (entities.User, error)
	LoginAdmin(ctx context.Context, email, password string) (entities.Admin, error)
	CreateAdmin(ctx context.Context, email, password string, role entities.AdminRole) (entities.Admin, error)
	EnsureSeedAdmin(ctx context.Context, email, password string) error
}

func newAccountService(repo *mockAccountRepo) accountAPI {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAccountService(logger, repo)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountService_RegisterUser(t *testing.T) {
	repo := new(mockAccountRepo)
	svc := newAccountService(repo)

	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
		// пароль никогда не хранится открытым текстом
		return u.Email == "new@example.com" &&
			u.PasswordHash != "secret12" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret12")) == nil
	})).Return(nil).Once()

	user, err := svc.RegisterUser(context.Background(), service.RegisterInput{
		Email:       "new@example.com",
		PhoneNumber: "+37120000000",
		Password:    "secret12",
		Location:    "Riga",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	repo.AssertExpectations(t)
}

func TestAccountService_LoginUser(t *testing.T) {
	password := "secret12"
	stored := entities.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hashOf(t, password),
	}

	testCases := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mockAccountRepo)
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    stored.Email,
			password: password,
			setup: func(repo *mockAccountRepo) {
				repo.On("GetUserByEmail", mock.Anything, stored.Email).Return(stored, nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    stored.Email,
			password: "wrong-pass",
			setup: func(repo *mockAccountRepo) {
				repo.On("GetUserByEmail", mock.Anything, stored.Email).Return(stored, nil).Once()
			},
			wantErr: entities.ErrInvalidCredentials,
		},
		{
			name:     "unknown email looks like bad credentials",
			email:    "ghost@example.com",
			password: password,
			setup: func(repo *mockAccountRepo) {
				repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(entities.User{}, entities.ErrUserNotFound).Once()
			},
			wantErr: entities.ErrInvalidCredentials,
		},
		{
			name:     "blocked user",
			email:    stored.Email,
			password: password,
			setup: func(repo *mockAccountRepo) {
				blocked := stored
				blocked.IsBlocked = true
				repo.On("GetUserByEmail", mock.Anything, stored.Email).Return(blocked, nil).Once()
			},
			wantErr: entities.ErrUserBlocked,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockAccountRepo)
			tc.setup(repo)
			svc := newAccountService(repo)

			user, err := svc.LoginUser(context.Background(), tc.email, tc.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestAccountService_LoginAdmin(t *testing.T) {
	password := "admin-pass"
	stored := entities.Admin{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, password),
		Role:         entities.RoleManager,
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("GetAdminByEmail", mock.Anything, stored.Email).Return(stored, nil).Once()

		admin, err := newAccountService(repo).LoginAdmin(context.Background(), stored.Email, password)

		require.NoError(t, err)
		assert.Equal(t, entities.RoleManager, admin.Role)
	})

	t.Run("unknown admin looks like bad credentials", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("GetAdminByEmail", mock.Anything, "ghost@example.com").
			Return(entities.Admin{}, entities.ErrAdminNotFound).Once()

		_, err := newAccountService(repo).LoginAdmin(context.Background(), "ghost@example.com", password)

		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}

func TestAccountService_CreateAdmin(t *testing.T) {
	t.Run("rejects unknown role", func(t *testing.T) {
		repo := new(mockAccountRepo)

		_, err := newAccountService(repo).CreateAdmin(context.Background(), "a@example.com", "secret12", "OWNER")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveAdmin", mock.Anything, mock.Anything)
	})
}

func TestAccountService_EnsureSeedAdmin(t *testing.T) {
	t.Run("empty seed is a no-op", func(t *testing.T) {
		repo := new(mockAccountRepo)

		err := newAccountService(repo).EnsureSeedAdmin(context.Background(), "", "")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CountAdmins", mock.Anything)
	})

	t.Run("existing admins keep the table untouched", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("CountAdmins", mock.Anything).Return(2, nil).Once()

		err := newAccountService(repo).EnsureSeedAdmin(context.Background(), "root@example.com", "secret12")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "SaveAdmin", mock.Anything, mock.Anything)
	})

	t.Run("empty table gets super admin", func(t *testing.T) {
		repo := new(mockAccountRepo)
		repo.On("CountAdmins", mock.Anything).Return(0, nil).Once()
		repo.On("SaveAdmin", mock.Anything, mock.MatchedBy(func(a entities.Admin) bool {
			return a.Email == "root@example.com" && a.Role == entities.RoleSuperAdmin
		})).Return(nil).Once()

		err := newAccountService(repo).EnsureSeedAdmin(context.Background(), "root@example.com", "secret12")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
