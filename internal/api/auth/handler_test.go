package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitness-app/database"
	"fitness-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func stubMailer(t *testing.T) {
	t.Helper()
	orig := sendMail
	sendMail = func(to, subject, body string) error { return nil }
	t.Cleanup(func() { sendMail = orig })
}

func jsonRequest(t *testing.T, method string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestRequestPasswordResetWithPendingVerifyToken(t *testing.T) {
	setupTestDB(t)
	stubMailer(t)

	user := users.User{Email: "new@example.com", Role: users.RoleUser}
	require.NoError(t, database.DB.Create(&user).Error)
	// Signup leaves the verify_email token outstanding until the user clicks it.
	verify := users.VerificationToken{
		UserID: user.ID,
		Token:  generateToken(),
		Type:   "verify_email",
	}
	require.NoError(t, database.DB.Create(&verify).Error)

	c, w := jsonRequest(t, http.MethodPost, gin.H{"email": user.Email})
	RequestPasswordReset(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resetCount, verifyCount int64
	require.NoError(t, database.DB.Model(&users.VerificationToken{}).
		Where("user_id = ? AND type = ?", user.ID, "password_reset").Count(&resetCount).Error)
	require.NoError(t, database.DB.Model(&users.VerificationToken{}).
		Where("user_id = ? AND type = ?", user.ID, "verify_email").Count(&verifyCount).Error)
	assert.Equal(t, int64(1), resetCount)
	assert.Equal(t, int64(1), verifyCount)
}

func TestRequestPasswordResetReplacesPreviousToken(t *testing.T) {
	setupTestDB(t)
	stubMailer(t)

	user := users.User{Email: "repeat@example.com", Role: users.RoleUser, IsVerified: true}
	require.NoError(t, database.DB.Create(&user).Error)

	for i := 0; i < 2; i++ {
		c, w := jsonRequest(t, http.MethodPost, gin.H{"email": user.Email})
		RequestPasswordReset(c)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, database.DB.Model(&users.VerificationToken{}).
		Where("user_id = ? AND type = ?", user.ID, "password_reset").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRequestPasswordResetUnknownEmailStaysQuiet(t *testing.T) {
	setupTestDB(t)
	stubMailer(t)

	c, w := jsonRequest(t, http.MethodPost, gin.H{"email": "nobody@example.com"})
	RequestPasswordReset(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&users.VerificationToken{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
