package models

// User represents the account allowed to open the ledger.
type User struct {
	// ID is the unique, store-assigned identifier.
	ID int64

	// Username is unique and compared case-sensitively.
	Username string

	// PasswordHash is the base64 PBKDF2 key derived from the password and PasswordSalt.
	PasswordHash string

	// PasswordSalt is the base64 random salt used for PasswordHash.
	// It is generated per user and never reused.
	PasswordSalt string
}
