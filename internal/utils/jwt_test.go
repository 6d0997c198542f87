package utils

import (
	"testing"

	"fleetdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	pair, err := GenerateTokenPair(userID, "driver@example.com", models.RoleEmployee, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "driver@example.com", claims.Email)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(primitive.NewObjectID(), "a@example.com", models.RoleAdmin, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	userID := primitive.NewObjectID()
	pair, err := GenerateTokenPair(userID, "b@example.com", models.RoleApprover, testSecret)
	require.NoError(t, err)

	fresh, err := RefreshAccessToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(fresh.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleApprover, claims.Role)
}
