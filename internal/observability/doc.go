// Package observability provides structured logging for the employee API.
//
// Loggers are zap-based and configured from the LOG_LEVEL and LOG_FORMAT
// environment settings. Request IDs arrive via chi middleware and are
// attached to log lines by the HTTP layer.
package observability
