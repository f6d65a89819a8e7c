package services

import "context"

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash, password string) (bool, error)
}
