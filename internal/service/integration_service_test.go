package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bdrdragon/internal/model"
)

func TestIntegrationService_Status(t *testing.T) {
	t.Run("default before first sync", func(t *testing.T) {
		repo := new(MockIntegrationRepository)
		repo.On("FindByScope", mock.Anything, model.IntegrationScopeGlobal).Return(nil, gorm.ErrRecordNotFound)

		status, err := NewIntegrationService(repo, fixedClock(time.Now())).Status(context.Background())

		require.NoError(t, err)
		assert.Equal(t, model.IntegrationScopeGlobal, status.Scope)
		assert.Equal(t, model.IntegrationNotConfigured, status.SalesforceStatus)
		assert.Equal(t, model.IntegrationStubbed, status.OutreachStatus)
		assert.Nil(t, status.LastSyncAt)
	})

	t.Run("stored row", func(t *testing.T) {
		stored := &model.IntegrationStatus{ID: uuid.New(), Scope: model.IntegrationScopeGlobal, SalesforceStatus: model.IntegrationConfigured}
		repo := new(MockIntegrationRepository)
		repo.On("FindByScope", mock.Anything, model.IntegrationScopeGlobal).Return(stored, nil)

		status, err := NewIntegrationService(repo, fixedClock(time.Now())).Status(context.Background())

		require.NoError(t, err)
		assert.Same(t, stored, status)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := new(MockIntegrationRepository)
		repo.On("FindByScope", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := NewIntegrationService(repo, fixedClock(time.Now())).Status(context.Background())
		assert.Error(t, err)
	})
}

func TestIntegrationService_Sync(t *testing.T) {
	now := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)

	t.Run("creates the global row", func(t *testing.T) {
		repo := new(MockIntegrationRepository)
		repo.On("FindByScope", mock.Anything, model.IntegrationScopeGlobal).Return(nil, gorm.ErrRecordNotFound)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(s *model.IntegrationStatus) bool {
			return s.Scope == model.IntegrationScopeGlobal &&
				s.SalesforceStatus == model.IntegrationConfigured &&
				s.OutreachStatus == model.IntegrationStubbed &&
				s.LastSyncAt != nil && s.LastSyncAt.Equal(now)
		})).Return(nil)

		result, err := NewIntegrationService(repo, fixedClock(now)).Sync(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Sync triggered (stub)", result.Message)
		require.NotNil(t, result.LastSyncAt)
		assert.True(t, now.Equal(*result.LastSyncAt))
		repo.AssertExpectations(t)
	})

	t.Run("updates the existing row", func(t *testing.T) {
		id := uuid.New()
		existing := &model.IntegrationStatus{ID: id, Scope: model.IntegrationScopeGlobal, SalesforceStatus: model.IntegrationNotConfigured}
		repo := new(MockIntegrationRepository)
		repo.On("FindByScope", mock.Anything, model.IntegrationScopeGlobal).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		_, err := NewIntegrationService(repo, fixedClock(now)).Sync(context.Background())

		require.NoError(t, err)
		assert.Equal(t, id, existing.ID)
		assert.Equal(t, model.IntegrationConfigured, existing.SalesforceStatus)
		repo.AssertExpectations(t)
	})
}
