package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupActivateLogin(t *testing.T) {
	env := newEnv(t)
	signup := map[string]any{"name": "Asha", "email": "Asha@Example.com", "password": "supersecret"}

	w := env.do(http.MethodPost, "/auth/signup", signup, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, env.mails, 1)
	assert.Equal(t, []string{"asha@example.com"}, env.mails[0].to)

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "asha@example.com").First(&stored).Error)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.Contains(t, env.mails[0].msg, stored.AccountActivationToken)

	w = env.do(http.MethodPost, "/auth/signup", signup, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	login := map[string]any{"email": "ASHA@example.com", "password": "supersecret"}
	w = env.do(http.MethodPost, "/auth/login", login, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/auth/verify-email/"+stored.AccountActivationToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodPost, "/auth/verify-email/"+stored.AccountActivationToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/auth/login", login, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	token := body["token"].(string)
	assert.NotEmpty(t, token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middlewares.TokenCookie+"=")

	claims, err := middlewares.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "Asha", claims.Name)

	w = env.do(http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asha@example.com", decode(t, w)["user"].(map[string]any)["email"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newEnv(t)
	w := env.do(http.MethodPost, "/auth/signup", map[string]any{"name": "Ravi", "email": "ravi@example.com", "password": "supersecret"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/auth/login", map[string]any{"email": "ravi@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(http.MethodPost, "/auth/login", map[string]any{"email": "nobody@example.com", "password": "supersecret"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(http.MethodPost, "/auth/login", map[string]any{"email": "ravi@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordReset(t *testing.T) {
	env := newEnv(t)
	user, _ := env.user("Meera", models.RoleUser)

	w := env.do(http.MethodPost, "/auth/forgot-password", map[string]any{"email": "unknown@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.mails)

	w = env.do(http.MethodPost, "/auth/forgot-password", map[string]any{"email": user.Email}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.mails, 1)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.NotEmpty(t, stored.PasswordResetToken)

	w = env.do(http.MethodPost, "/auth/reset-password/"+stored.PasswordResetToken, map[string]any{"password": "brand-new-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/auth/login", map[string]any{"email": user.Email, "password": "brand-new-pass"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserAdministration(t *testing.T) {
	env := newEnv(t)
	user, userToken := env.user("Kiran", models.RoleUser)
	_, adminToken := env.user("Root", models.RoleSuperAdmin)

	w := env.do(http.MethodGet, "/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/users", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "kiran@example.com"))

	w = env.do(http.MethodPut, "/users/"+itoa(user.ID), map[string]any{"role": models.RoleSuperAdmin}, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodDelete, "/users/"+itoa(user.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/users/"+itoa(user.ID), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
