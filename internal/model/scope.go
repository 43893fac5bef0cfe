package model

// Scope identifies who an operation runs for.
type Scope struct {
	UserID       int64  // Telegram user id of the caller
	ChatID       int64  // chat the request came from; scratch reads land here
	LanguageCode string // optional, from the Telegram user
}

// NewScope builds a scope for a user acting from their own private chat.
func NewScope(userID int64) Scope {
	return Scope{UserID: userID, ChatID: userID}
}
