package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService("hunter2", "", "test-cookie-secret", time.Hour, false)
}

func TestAuthService_CheckPassword(t *testing.T) {
	svc := newTestAuthService(t)

	assert.NoError(t, svc.CheckPassword("hunter2"))
	assert.ErrorIs(t, svc.CheckPassword("wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, svc.CheckPassword(""), ErrInvalidPassword)
}

func TestAuthService_CheckPasswordHashed(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService("", string(hash), "test-cookie-secret", time.Hour, false)

	assert.NoError(t, svc.CheckPassword("hunter2"))
	assert.ErrorIs(t, svc.CheckPassword("wrong"), ErrInvalidPassword)
}

func TestAuthService_MarkerRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	marker, err := svc.GenerateMarker()
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyMarker(marker))
}

func TestAuthService_VerifyMarkerRejectsForgery(t *testing.T) {
	svc := newTestAuthService(t)
	other := NewAuthService("hunter2", "", "another-secret", time.Hour, false)

	forged, err := other.GenerateMarker()
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyMarker(forged), ErrInvalidMarker)
	assert.ErrorIs(t, svc.VerifyMarker("not-a-token"), ErrInvalidMarker)
}

func TestAuthService_MarkerCookie(t *testing.T) {
	svc := newTestAuthService(t)

	w := httptest.NewRecorder()
	require.NoError(t, svc.SetMarkerCookie(w))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, MarkerCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.NoError(t, svc.VerifyMarker(cookie.Value))

	w = httptest.NewRecorder()
	svc.ClearMarkerCookie(w)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestAuthService_SecureCookieInProduction(t *testing.T) {
	svc := NewAuthService("hunter2", "", "test-cookie-secret", time.Hour, true)

	w := httptest.NewRecorder()
	require.NoError(t, svc.SetMarkerCookie(w))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}
