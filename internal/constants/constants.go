package constants

// Session
const (
	SessionCookieName = "freezer_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength     = 8
	InviteCodeLength      = 8
	InviteCodeMaxAttempts = 5
)

// Shopping ingestion limits
const (
	MinIngestContentLength = 10
	MaxIngestContentLength = 5000
	MaxFallbackItems       = 20
	ParseCacheMaxEntries   = 1000
)
