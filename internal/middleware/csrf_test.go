package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/steiza/a2docstore/internal/ctxkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFProtection_SafeMethodIssuesToken(t *testing.T) {
	var ctxToken string
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxToken = ctxkeys.CSRFToken(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/add", nil))

	require.NotEmpty(t, ctxToken)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Equal(t, ctxToken, cookies[0].Value)
}

func TestCSRFProtection_Post(t *testing.T) {
	token := generateCSRFToken()

	post := func(form url.Values, withCookie bool) *httptest.ResponseRecorder {
		var called bool
		handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("POST", "/delete", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		}

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, w.Code == http.StatusOK, called)
		return w
	}

	t.Run("matching token passes", func(t *testing.T) {
		w := post(url.Values{csrfFormField: {token}}, true)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := post(url.Values{}, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("mismatched token rejected", func(t *testing.T) {
		w := post(url.Values{csrfFormField: {generateCSRFToken()}}, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no cookie rejected", func(t *testing.T) {
		w := post(url.Values{csrfFormField: {token}}, false)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
