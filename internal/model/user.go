package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleBasic Role = "BASIC"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBasic
}

// User represents a salesperson or administrator.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'BASIC'"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true;index"`
	FirstName    *string   `json:"firstName" gorm:"size:100"`
	LastName     *string   `json:"lastName" gorm:"size:100"`

	// Monthly quotas.
	QuotaCalls              int `json:"quotaCalls" gorm:"not null;default:0"`
	QuotaEmails             int `json:"quotaEmails" gorm:"not null;default:0"`
	QuotaMeetingsBooked     int `json:"quotaMeetingsBooked" gorm:"not null;default:0"`
	QuotaCleanOpportunities int `json:"quotaCleanOpportunities" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	UserMarkets []UserMarket `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// MarketSummaries returns the id/name of every preloaded market assignment.
func (u *User) MarketSummaries() []MarketSummary {
	out := make([]MarketSummary, 0, len(u.UserMarkets))
	for _, um := range u.UserMarkets {
		out = append(out, MarketSummary{ID: um.Market.ID, Name: um.Market.Name})
	}
	return out
}
