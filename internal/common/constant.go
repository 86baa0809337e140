// Package common contains storage keys and header names shared by the
// request dispatcher and the session manager.
package common

// Keys of the persisted credentials record. Both are written and removed
// together.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Keys of the pending second-factor record, present only while a login
// challenge is unresolved.
const (
	PendingUserIDKey   = "pending_2fa_user_id"
	PendingEmailKey    = "pending_2fa_email"
	PendingPasswordKey = "pending_2fa_password"
)

// CredentialKeys lists the persisted credentials record.
var CredentialKeys = []string{TokenKey, UserKey}

// PendingKeys lists the pending second-factor record.
var PendingKeys = []string{PendingUserIDKey, PendingEmailKey, PendingPasswordKey}

const (
	ContentTypeHeaderName   = "Content-Type"
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"

	JSONContentType = "application/json"
	BearerPrefix    = "Bearer "
)
