package domain

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrSignatureNotFound   = errors.New("signature not found")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrKeyGeneration       = errors.New("key generation failed")
	ErrSigningFailure      = errors.New("signing failed")
	ErrPersistenceConflict = errors.New("persistence conflict")
	ErrPolicyDenied        = errors.New("denied by policy")
)
