package admin

import (
	"net/http"
	"testing"

	"fitness-app/database"
	"fitness-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserDetailsHidesCredentials(t *testing.T) {
	setupTestDB(t)

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	sub := "google-sub-1"
	cus := "cus_abc123"
	user := users.User{
		Email:            "member@example.com",
		Password:         &hash,
		GoogleSub:        &sub,
		StripeCustomerID: &cus,
		Role:             users.RoleUser,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := adminContext(t)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	GetUserDetails(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "member@example.com")
	assert.NotContains(t, body, hash)
	assert.NotContains(t, body, sub)
	assert.NotContains(t, body, cus)
}
