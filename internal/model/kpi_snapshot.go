package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KpiSnapshot holds one user's raw activity counts for one day.
type KpiSnapshot struct {
	ID                   uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID               uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_kpi_user_date"`
	Date                 time.Time `json:"date" gorm:"not null;uniqueIndex:idx_kpi_user_date;index"`
	Calls                int       `json:"calls" gorm:"not null;default:0"`
	Emails               int       `json:"emails" gorm:"not null;default:0"`
	MeetingsBooked       int       `json:"meetingsBooked" gorm:"not null;default:0"`
	MeetingsHeld         int       `json:"meetingsHeld" gorm:"not null;default:0"`
	OpportunitiesCreated int       `json:"opportunitiesCreated" gorm:"not null;default:0"`
	CleanOpportunities   int       `json:"cleanOpportunities" gorm:"not null;default:0"`
	CreatedAt            time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (k *KpiSnapshot) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
