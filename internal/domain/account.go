package domain

import "time"

// Account represents a portal user able to authenticate.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
