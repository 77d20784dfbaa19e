package model

// Storage keys.
const (
	// KeyTarget is the default key under which the persisted target is stored.
	KeyTarget = "countdownTarget"
)
