package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	jwtpkg "github.com/iskolardev/paygate/internal/pkg/jwt"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/auth"
	"github.com/iskolardev/paygate/services/auth/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "test-issuer",
		},
	}
}

func issueToken(t *testing.T, cfg *models.Config, uid string) string {
	t.Helper()
	token, _, err := jwtpkg.GenerateToken(uid, "juan@example.com", "customer", cfg)
	assert.NoError(t, err)
	return token
}

func TestVerify_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)
	cfg := testConfig()
	uc := NewAuthUC(cfg, mockRepo)

	token := issueToken(t, cfg, "user-1")

	mockRepo.EXPECT().GetUser(gomock.Any(), "user-1").Return(&models.User{
		ID:    "user-1",
		Email: "juan@example.com",
		Role:  "customer",
	}, nil)

	// Act
	identity, err := uc.Verify(context.Background(), token, "")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "user-1", identity.Subject)
	assert.Equal(t, "juan@example.com", identity.Email)
	assert.Equal(t, "customer", identity.Role)
}

func TestVerify_RoleFromStoreNotToken(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)
	cfg := testConfig()
	uc := NewAuthUC(cfg, mockRepo)

	// Token carries "customer"; the store says "admin" and wins
	token := issueToken(t, cfg, "user-1")

	mockRepo.EXPECT().GetUser(gomock.Any(), "user-1").Return(&models.User{
		ID:    "user-1",
		Email: "juan@example.com",
		Role:  "admin",
	}, nil)

	// Act
	identity, err := uc.Verify(context.Background(), token, "")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "admin", identity.Role)
}

func TestVerify_InvalidToken(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repo expectations: an invalid token never reaches the store
	mockRepo := mocks.NewMockAuthRepo(ctrl)
	uc := NewAuthUC(testConfig(), mockRepo)

	// Act
	identity, err := uc.Verify(context.Background(), "not-a-token", "")

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerify_WrongSecret(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "other-secret"
	token := issueToken(t, otherCfg, "user-1")

	uc := NewAuthUC(testConfig(), mockRepo)

	// Act
	identity, err := uc.Verify(context.Background(), token, "")

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerify_UserNotFound(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)
	cfg := testConfig()
	uc := NewAuthUC(cfg, mockRepo)

	token := issueToken(t, cfg, "user-ghost")

	mockRepo.EXPECT().GetUser(gomock.Any(), "user-ghost").Return(nil, auth.ErrUserNotFound)

	// Act
	identity, err := uc.Verify(context.Background(), token, "")

	// Assert
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	assert.Nil(t, identity)
}

func TestVerify_RoleMismatch(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)
	cfg := testConfig()
	uc := NewAuthUC(cfg, mockRepo)

	token := issueToken(t, cfg, "user-1")

	mockRepo.EXPECT().GetUser(gomock.Any(), "user-1").Return(&models.User{
		ID:    "user-1",
		Email: "juan@example.com",
		Role:  "customer",
	}, nil)

	// Act
	identity, err := uc.Verify(context.Background(), token, "admin")

	// Assert
	assert.ErrorIs(t, err, auth.ErrRoleMismatch)
	assert.Nil(t, identity)
}

func TestVerify_StoreError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuthRepo(ctrl)
	cfg := testConfig()
	uc := NewAuthUC(cfg, mockRepo)

	token := issueToken(t, cfg, "user-1")

	mockRepo.EXPECT().GetUser(gomock.Any(), "user-1").Return(nil, errors.New("connection refused"))

	// Act
	identity, err := uc.Verify(context.Background(), token, "")

	// Assert
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidToken)
	assert.Nil(t, identity)
}
