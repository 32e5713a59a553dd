package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/steiza/a2docstore/internal/ctxkeys"
)

const notificationCookieName = "notification"

// baseData carries the fields every page template expects.
type baseData struct {
	Region            string
	GoogleAnalyticsID string
	Authorized        bool
	Notification      string
	CSRFToken         string
}

func newBaseData(r *http.Request) baseData {
	data := baseData{
		Authorized: ctxkeys.Authorized(r.Context()),
		CSRFToken:  ctxkeys.CSRFToken(r.Context()),
	}

	cfg := ctxkeys.Config(r.Context())
	if cfg != nil {
		data.Region = cfg.Region
		data.GoogleAnalyticsID = cfg.GoogleAnalyticsID
	}

	return data
}

// setNotification stores a one-shot message for the next page load.
// URL-escaped so arbitrary titles survive cookie transport.
func setNotification(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:  notificationCookieName,
		Value: url.QueryEscape(message),
		Path:  "/",
	})
}

// popNotification reads and clears the pending notification, if any.
func popNotification(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(notificationCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:    notificationCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
