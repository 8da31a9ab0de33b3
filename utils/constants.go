// File: utils/constants.go
package utils

// SessionCookieName is the browser cookie carrying the signed session token.
const SessionCookieName = "vf_session"

// SessionContextKey is the gin context key holding the resolved session id.
const SessionContextKey = "sessionID"

// LoggerContextKey is the gin context key holding the request-scoped logger.
const LoggerContextKey = "logger"
