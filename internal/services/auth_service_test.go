// internal/services/auth_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	authService *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.authService = NewAuthService(suite.db, testConfig(), nil)
}

func (suite *AuthServiceTestSuite) register(email string) *models.User {
	user, err := suite.authService.Register(context.Background(), &RegisterRequest{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
	})
	require.NoError(suite.T(), err)
	return user
}

func (suite *AuthServiceTestSuite) TestRegisterDerivesUsername() {
	user := suite.register("Pet.Lover@example.com")
	assert.Equal(suite.T(), "pet.lover", user.Username)
	assert.True(suite.T(), user.IsActive)
	assert.False(suite.T(), user.IsStaff)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestRegisterSuffixesCollidingUsername() {
	first := suite.register("buddy@example.com")
	second := suite.register("buddy@example.org")

	assert.Equal(suite.T(), "buddy", first.Username)
	assert.NotEqual(suite.T(), first.Username, second.Username)
	assert.True(suite.T(), strings.HasPrefix(second.Username, "buddy"))
	assert.Len(suite.T(), second.Username, len("buddy")+4)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	suite.register("owner@example.com")

	_, err := suite.authService.Register(context.Background(), &RegisterRequest{Email: "OWNER@example.com", Password: "password123"})
	assert.ErrorIs(suite.T(), err, ErrConflict)
}

func (suite *AuthServiceTestSuite) TestRegisterValidation() {
	ctx := context.Background()

	_, err := suite.authService.Register(ctx, &RegisterRequest{Email: "short@example.com", Password: "123"})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.authService.Register(ctx, &RegisterRequest{Email: "bad", Password: "password123"})
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *AuthServiceTestSuite) TestLoginIssuesTokens() {
	user := suite.register("login@example.com")

	resp, err := suite.authService.Login(context.Background(), &LoginRequest{Email: "Login@Example.com", Password: "password123"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), 3600, resp.ExpiresIn)
	require.NotNil(suite.T(), resp.User)
	assert.NotNil(suite.T(), resp.User.LastLoginAt)

	claims, err := utils.ValidateJWT(resp.Access)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, claims.UserID)

	subject, err := utils.ValidateRefreshToken(resp.Refresh)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, subject)
}

func (suite *AuthServiceTestSuite) TestLoginFailures() {
	ctx := context.Background()
	user := suite.register("locked@example.com")

	_, err := suite.authService.Login(ctx, &LoginRequest{Email: "locked@example.com", Password: "wrong-password"})
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	_, err = suite.authService.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	require.NoError(suite.T(), suite.db.Model(user).Update("is_active", false).Error)
	_, err = suite.authService.Login(ctx, &LoginRequest{Email: "locked@example.com", Password: "password123"})
	assert.ErrorIs(suite.T(), err, ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestRefresh() {
	ctx := context.Background()
	suite.register("refresh@example.com")

	login, err := suite.authService.Login(ctx, &LoginRequest{Email: "refresh@example.com", Password: "password123"})
	require.NoError(suite.T(), err)

	resp, err := suite.authService.Refresh(ctx, &RefreshRequest{Refresh: login.Refresh})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.Access)
	assert.Empty(suite.T(), resp.Refresh)

	// An access token is not accepted as a refresh token.
	_, err = suite.authService.Refresh(ctx, &RefreshRequest{Refresh: login.Access})
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	orphan, err := utils.GenerateRefreshToken(4242, 1)
	require.NoError(suite.T(), err)
	_, err = suite.authService.Refresh(ctx, &RefreshRequest{Refresh: orphan})
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	_, err = suite.authService.Refresh(ctx, &RefreshRequest{})
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
