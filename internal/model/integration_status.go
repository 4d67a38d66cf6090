package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntegrationScopeGlobal is the only scope the sync stub writes.
const IntegrationScopeGlobal = "GLOBAL"

// Integration states reported to the admin console.
const (
	IntegrationNotConfigured = "NOT_CONFIGURED"
	IntegrationConfigured    = "CONFIGURED"
	IntegrationStubbed       = "STUBBED"
)

// IntegrationStatus tracks third-party sync state.
type IntegrationStatus struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Scope            string     `json:"scope" gorm:"size:20;not null;uniqueIndex"`
	SalesforceStatus string     `json:"salesforceStatus" gorm:"size:50;not null"`
	OutreachStatus   string     `json:"outreachStatus" gorm:"size:50;not null"`
	LastSyncAt       *time.Time `json:"lastSyncAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (s *IntegrationStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DefaultIntegrationStatus is reported before the first sync.
func DefaultIntegrationStatus() IntegrationStatus {
	return IntegrationStatus{
		Scope:            IntegrationScopeGlobal,
		SalesforceStatus: IntegrationNotConfigured,
		OutreachStatus:   IntegrationStubbed,
	}
}

// AllModels lists every table for migrations, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Market{},
		&UserMarket{},
		&KpiSnapshot{},
		&TaskList{},
		&Task{},
		&IntegrationStatus{},
	}
}
