package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	eventsvc "github.com/epochline/epochline/internal/services/events"
)

// callerFromRequest establishes the request's capability from the
// Authorization header. A bearer token matching the configured owner token
// grants the owner capability; anything else is an anonymous reader.
//
// When no owner token is configured, mutations are locked out entirely
// rather than open to everyone.
func callerFromRequest(r *http.Request, ownerToken string) eventsvc.Caller {
	if ownerToken == "" {
		return eventsvc.Caller{}
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return eventsvc.Caller{}
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(ownerToken)) == 1 {
		return eventsvc.Caller{Owner: true}
	}
	return eventsvc.Caller{}
}
