package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"rps-backend/app/models"
	"rps-backend/app/repo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RedeemOutcome is the terminal state of a verification attempt. A missing
// token id and a wrong secret both land on RedeemInvalid so an external
// prober cannot tell which ids exist.
type RedeemOutcome int

const (
	RedeemInvalid RedeemOutcome = iota
	RedeemExpired
	RedeemOK
)

const linkTTL = 30 * time.Minute

type VerificationService struct {
	tokens  *repo.VerificationRepository
	users   *repo.UserRepository
	baseURL string
}

func NewVerificationService(tokens *repo.VerificationRepository, users *repo.UserRepository, baseURL string) *VerificationService {
	return &VerificationService{tokens: tokens, users: users, baseURL: baseURL}
}

// IssueLink mints a fresh verification link for the user: a public uuid used
// as the lookup key plus a separate random secret whose SHA-256 is the only
// thing persisted. Any unused prior link for the same user is superseded.
func (s *VerificationService) IssueLink(userID uint) (string, error) {
	tokenID := uuid.NewString()
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)
	sum := sha256.Sum256([]byte(secret))

	if err := s.tokens.DeleteUnusedByUser(userID); err != nil {
		return "", err
	}
	ev := &models.EmailVerification{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt: time.Now().UTC().Add(linkTTL),
	}
	if err := s.tokens.Create(ev); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/auth/verify-email?token_id=%s&token=%s", s.baseURL, tokenID, secret), nil
}

// Redeem resolves a presented link to one of the three terminal outcomes.
// Success consumes the token and flips the user's email_verified flag in one
// transaction; a second redeemer of the same token observes used_at already
// set and gets RedeemExpired.
func (s *VerificationService) Redeem(tokenID, secret string) (RedeemOutcome, error) {
	ev, err := s.tokens.FindByID(tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RedeemInvalid, nil
		}
		return RedeemInvalid, err
	}
	now := time.Now().UTC()
	if ev.UsedAt != nil || now.After(ev.ExpiresAt) {
		return RedeemExpired, nil
	}
	sum := sha256.Sum256([]byte(secret))
	if !hmac.Equal([]byte(hex.EncodeToString(sum[:])), []byte(ev.TokenHash)) {
		return RedeemInvalid, nil
	}
	consumed, err := s.tokens.Consume(ev.ID, ev.UserID, now)
	if err != nil {
		return RedeemInvalid, err
	}
	if !consumed {
		return RedeemExpired, nil
	}
	return RedeemOK, nil
}
