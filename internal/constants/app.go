package constants

// Application Information
const (
	AppName    = "ZZINCAFE Server"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Redis Key Prefixes
const (
	RedisKeyPrefix  = "zzincafe:"
	RedisKeySession = RedisKeyPrefix + "session:"
)

// Auth token purposes stored in the auth_emails table.
const (
	PurposeEmailVerify   = "EMAIL_VERIFY"
	PurposePasswordReset = "PASSWORD_RESET"
)

// Gin context keys set by the session middleware.
const (
	CtxKeyUserID    = "user_id"
	CtxKeySessionID = "session_id"
	CtxKeyRequestID = "request_id"
)
