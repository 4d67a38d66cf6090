package service

import (
	"context"
	"fmt"
	"time"

	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

// SyncResult is returned by the manual sync action.
type SyncResult struct {
	Message    string     `json:"message"`
	LastSyncAt *time.Time `json:"lastSyncAt"`
}

// IntegrationService reports and updates third-party integration status.
type IntegrationService interface {
	Status(ctx context.Context) (*model.IntegrationStatus, error)
	Sync(ctx context.Context) (*SyncResult, error)
}

type integrationService struct {
	repo  repository.IntegrationRepository
	clock Clock
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(repo repository.IntegrationRepository, clock Clock) IntegrationService {
	return &integrationService{repo: repo, clock: clock}
}

// Status returns the GLOBAL row, or the default status when no sync has happened yet.
func (s *integrationService) Status(ctx context.Context) (*model.IntegrationStatus, error) {
	status, err := s.repo.FindByScope(ctx, model.IntegrationScopeGlobal)
	if err != nil {
		if isNotFound(err) {
			def := model.DefaultIntegrationStatus()
			return &def, nil
		}
		return nil, fmt.Errorf("find integration status: %w", err)
	}
	return status, nil
}

// Sync is a stub: it marks Salesforce configured and records the sync time.
func (s *integrationService) Sync(ctx context.Context) (*SyncResult, error) {
	status, err := s.repo.FindByScope(ctx, model.IntegrationScopeGlobal)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("find integration status: %w", err)
		}
		def := model.DefaultIntegrationStatus()
		status = &def
	}

	now := s.clock()
	status.SalesforceStatus = model.IntegrationConfigured
	status.OutreachStatus = model.IntegrationStubbed
	status.LastSyncAt = &now

	if err := s.repo.Save(ctx, status); err != nil {
		return nil, fmt.Errorf("save integration status: %w", err)
	}
	return &SyncResult{Message: "Sync triggered (stub)", LastSyncAt: status.LastSyncAt}, nil
}
