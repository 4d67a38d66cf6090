package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Market is a named sales territory.
type Market struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name                  string     `json:"name" gorm:"size:255;not null"`
	GeographicDescription *string    `json:"geographicDescription" gorm:"size:1000"`
	AccountExecutives     *string    `json:"accountExecutives" gorm:"size:1000"`
	ManagerName           *string    `json:"managerName" gorm:"size:255"`
	StartDate             *time.Time `json:"startDate"`

	// Monthly quotas of the territory. Descriptive only; pacing uses per-user quotas.
	QuotaCalls              int `json:"quotaCalls" gorm:"not null;default:0"`
	QuotaEmails             int `json:"quotaEmails" gorm:"not null;default:0"`
	QuotaMeetingsBooked     int `json:"quotaMeetingsBooked" gorm:"not null;default:0"`
	QuotaCleanOpportunities int `json:"quotaCleanOpportunities" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Market) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserMarket links a user to a market.
type UserMarket struct {
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	MarketID  uuid.UUID `json:"marketId" gorm:"type:char(36);primaryKey;index"`
	CreatedAt time.Time `json:"createdAt"`

	Market Market `json:"-" gorm:"foreignKey:MarketID"`
}

// MarketSummary is the id/name pair shown next to a user.
type MarketSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
