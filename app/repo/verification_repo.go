package repo

import (
	"time"

	"rps-backend/app/models"

	"gorm.io/gorm"
)

type VerificationRepository struct{ db *gorm.DB }

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ev *models.EmailVerification) error {
	return r.db.Create(ev).Error
}

// DeleteUnusedByUser enforces the single-active-link policy: issuing a new
// link supersedes every unused one for that user.
func (r *VerificationRepository) DeleteUnusedByUser(userID uint) error {
	return r.db.Where("user_id = ? AND used_at IS NULL", userID).
		Delete(&models.EmailVerification{}).Error
}

func (r *VerificationRepository) FindByID(id string) (*models.EmailVerification, error) {
	var ev models.EmailVerification
	if err := r.db.Where("id = ?", id).First(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

// Consume marks the token used and flips the owner's email_verified flag in
// one transaction. The update is conditioned on used_at still being NULL, so
// of two concurrent redeemers exactly one sees ok=true.
func (r *VerificationRepository) Consume(id string, userID uint, now time.Time) (bool, error) {
	consumed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.EmailVerification{}).
			Where("id = ? AND used_at IS NULL", id).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("email_verified", true).Error; err != nil {
			return err
		}
		consumed = true
		return nil
	})
	return consumed, err
}
