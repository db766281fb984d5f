package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID            string
	Name          sql.NullString
	Email         string
	EmailVerified sql.NullTime
	Image         sql.NullString
}

// Password is the credential row paired one-to-one with a user. The hash is
// always a bcrypt digest; plaintext is never stored.
type Password struct {
	UserID    string
	Hash      string
	UpdatedAt time.Time
}

// VerificationToken identifies a pending password reset. Identifier is the
// owner's email address. A token is valid only while Expires is strictly in
// the future.
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}

type Session struct {
	ID           string
	SessionToken string
	UserID       string
	Expires      time.Time
}
