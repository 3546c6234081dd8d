package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/tally/internal/auth"
)

const testSecret = "test-secret"

func TestService_RegisterHashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *auth.User) error {
			u.ID = uuid.New()
			u.CurrencySymbol = "€"
			u.CreatedAt = time.Now()
			return nil
		})

	svc := auth.NewService(repo, testSecret, time.Hour)

	u, err := svc.Register(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter2", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")))
}

func TestService_LoginAndParseToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	stored := &auth.User{
		ID:           userID,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "alice@example.com").
		Return(stored, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	token, u, err := svc.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	parsed, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestService_LoginFailures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	type testCase struct {
		name      string
		setupMock func(m *auth.MockRepository)
	}

	tests := []testCase{
		{
			name: "UnknownEmail",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "alice@example.com").
					Return(nil, auth.ErrUserNotFound)
			},
		},
		{
			name: "WrongPassword",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "alice@example.com").
					Return(&auth.User{ID: uuid.New(), PasswordHash: string(hash)}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := auth.NewService(repo, testSecret, time.Hour)

			_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestService_ParseTokenRejectsGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := auth.NewService(auth.NewMockRepository(ctrl), testSecret, time.Hour)

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_ParseTokenRejectsExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "alice@example.com").
		Return(&auth.User{ID: uuid.New(), PasswordHash: string(hash)}, nil)

	svc := auth.NewService(repo, testSecret, -time.Minute)

	token, _, err := svc.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_ParseTokenRejectsWrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "alice@example.com").
		Return(&auth.User{ID: uuid.New(), PasswordHash: string(hash)}, nil)

	issuer := auth.NewService(repo, "other-secret", time.Hour)
	verifier := auth.NewService(auth.NewMockRepository(ctrl), testSecret, time.Hour)

	token, _, err := issuer.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
