package models

import "time"

// EmailVerification is one issued verification link. The raw secret is never
// stored, only its SHA-256. Rows are superseded or marked used, never deleted
// on redemption.
type EmailVerification struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index;not null"`
	TokenHash string `gorm:"size:64;not null"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
