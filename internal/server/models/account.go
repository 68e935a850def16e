package models

// Account is a registered user. UserName is the identity; accounts are never
// updated or deleted by the application.
type Account struct {
	ID           int64
	UserName     string
	PasswordHash string
}
