package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/steiza/a2docstore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRF_TokenEmittedInForms(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, httptest.NewRequest("GET", "/add", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="csrf_token"`)

	var issued bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "csrf_token" {
			issued = cookie.Value != ""
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, issued)
}

func TestCSRF_RejectsPostWithoutToken(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "report.pdf", "pdf bytes")

	// Even a signed-in staff request is rejected without the token
	form := url.Values{"doc_id": {"1"}}
	req := httptest.NewRequest("POST", "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.authorize(t, req)

	w := env.do(t, req)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid CSRF token")

	_, err := env.repo.ByID(1)
	assert.NoError(t, err)
}

func TestCSRF_RejectsMismatchedToken(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "report.pdf", "pdf bytes")

	form := url.Values{"doc_id": {"1"}, "csrf_token": {strings.Repeat("x", 43)}}
	req := httptest.NewRequest("POST", "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRFToken})
	env.authorize(t, req)

	w := env.do(t, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	_, err := env.repo.ByID(1)
	assert.NoError(t, err)
}

func TestCSRF_AcceptsHeaderToken(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "report.pdf", "pdf bytes")

	form := url.Values{"doc_id": {"1"}}
	req := httptest.NewRequest("POST", "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", testCSRFToken)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRFToken})
	env.authorize(t, req)

	w := env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := env.repo.ByID(1)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}
