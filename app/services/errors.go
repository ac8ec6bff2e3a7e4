package services

import "errors"

// ErrUsernameTaken means another account already owns the normalized username.
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidCredentials covers both unknown-user and wrong-password so a
// caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailNotVerified means the credentials were right but the account has
// not redeemed its verification link.
var ErrEmailNotVerified = errors.New("email not verified")

// ErrUserNotFound is for operations that name an existing account, such as a
// role change.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRole rejects role values outside user/admin/owner.
var ErrInvalidRole = errors.New("invalid role")
