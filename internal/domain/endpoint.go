package domain

import "time"

// Endpoint is a previously opened server address.
type Endpoint struct {
	Address    string
	LastUsedAt time.Time
	Uses       int
}
