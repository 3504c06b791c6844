package project

import "github.com/BruksfildServices01/virtual-queue/internal/httperr"

// ===============================
// Project Status
// ===============================

type Status string

const (
	StatusPublic   Status = "PUBLIC"
	StatusPrivate  Status = "PRIVATE"
	StatusUnlisted Status = "UNLISTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPublic, StatusPrivate, StatusUnlisted:
		return true
	}
	return false
}

// ParseStatus accepts the exact upper-case enum value.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// ParseStatusFilter treats an empty value as "no filter".
func ParseStatusFilter(raw string) (*Status, error) {
	if raw == "" {
		return nil, nil
	}
	s, err := ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ===============================
// Visibility
// ===============================

// IsPubliclyResolvable reports whether anonymous callers may resolve a
// project by its username.
func IsPubliclyResolvable(s Status) bool {
	return s == StatusPublic
}
