package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	deleteMarketAssignments = regexp.QuoteMeta("DELETE FROM `user_markets` WHERE market_id = ?")
	deleteMarket            = regexp.QuoteMeta("DELETE FROM `markets` WHERE id = ?")
)

func TestMarketRepository_Delete(t *testing.T) {
	marketID := uuid.New()

	tests := []struct {
		name    string
		expect  func(m sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "assignments removed before market",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(deleteMarketAssignments).WithArgs(marketID).WillReturnResult(sqlmock.NewResult(0, 2))
				m.ExpectExec(deleteMarket).WithArgs(marketID).WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
		},
		{
			name: "unknown market rolls back",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(deleteMarketAssignments).WithArgs(marketID).WillReturnResult(sqlmock.NewResult(0, 0))
				m.ExpectExec(deleteMarket).WithArgs(marketID).WillReturnResult(sqlmock.NewResult(0, 0))
				m.ExpectRollback()
			},
			wantErr: gorm.ErrRecordNotFound,
		},
		{
			name: "assignment failure keeps market",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(deleteMarketAssignments).WithArgs(marketID).WillReturnError(errors.New("lock wait timeout"))
				m.ExpectRollback()
			},
			wantErr: errors.New("lock wait timeout"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, sqlMock := newMockDB(t)
			tt.expect(sqlMock)

			err := NewMarketRepository(gormDB).Delete(context.Background(), marketID)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if errors.Is(tt.wantErr, gorm.ErrRecordNotFound) {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				return
			}
			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}

func TestMarketRepository_CountByIDs_Empty(t *testing.T) {
	gormDB, _ := newMockDB(t)

	count, err := NewMarketRepository(gormDB).CountByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
