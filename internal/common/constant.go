package common

// RequestIDHeaderName carries the per-request correlation id on HTTP
// requests and responses.
const RequestIDHeaderName = "X-Request-ID"

// DefaultAuthSessionKey is the session attribute holding the signed-in
// user's email when no other key is configured.
const DefaultAuthSessionKey = "USER_EMAIL"
