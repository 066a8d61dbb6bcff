// Package common contains shared constants and sentinel errors used across
// companion components.
package common

// AuthorizationHeader is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the token in the Authorization header.
const BearerPrefix = "Bearer "
