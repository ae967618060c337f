package repository

import (
	"time"

	"github.com/webplanner/webplanner-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Rotate upserts the user's session row with a fresh token. The overwrite and
// the generation bump happen in the same statement, so the previous token
// stops resolving the moment this returns.
func (r *GormSessionRepository) Rotate(userID, token string) error {
	session := &models.Session{
		UserID:     userID,
		Token:      token,
		Generation: 1,
		IssuedAt:   time.Now().UTC(),
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"token":      session.Token,
				"generation": gorm.Expr("generation + 1"),
				"issued_at":  session.IssuedAt,
			}),
		}).
		Create(session).Error
}

// FindByToken resolves a token to its session
func (r *GormSessionRepository) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByUser removes the user's session
func (r *GormSessionRepository) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
