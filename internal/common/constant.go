// Package common contains shared constants and sentinel errors used across
// cmsadmin components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// TokenStorageKey is the single well-known local storage key
	// holding the credential token.
	TokenStorageKey = "token"
)
