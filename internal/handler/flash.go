package handler

import (
	"net/http"
	"net/url"
)

// noticeCookie carries a one-shot notice across a redirect.
const noticeCookie = "notice"

// setNotice stores msg for the next HTML page the client loads.
func setNotice(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice returns the pending notice, if any, and clears it.
func takeNotice(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(noticeCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   noticeCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
