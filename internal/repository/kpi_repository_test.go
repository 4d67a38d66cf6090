package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKpiRepository_FindSnapshots(t *testing.T) {
	gormDB, sqlMock := newMockDB(t)
	first, second := uuid.New(), uuid.New()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "calls", "emails"}).
		AddRow(uuid.NewString(), first.String(), from, 12, 30).
		AddRow(uuid.NewString(), second.String(), to, 4, 9)
	sqlMock.ExpectQuery(`SELECT \* FROM .kpi_snapshots. WHERE user_id IN \(\?,\?\) AND \(date >= \? AND date <= \?\)`).
		WithArgs(first, second, from, to).
		WillReturnRows(rows)

	snapshots, err := NewKpiRepository(gormDB).FindSnapshots(context.Background(), []uuid.UUID{first, second}, from, to)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, first, snapshots[0].UserID)
	assert.True(t, snapshots[0].Date.Equal(from))
	assert.Equal(t, 12, snapshots[0].Calls)
	assert.Equal(t, second, snapshots[1].UserID)
	assert.True(t, snapshots[1].Date.Equal(to))
}

func TestKpiRepository_FindSnapshots_NoUsers(t *testing.T) {
	gormDB, _ := newMockDB(t)

	snapshots, err := NewKpiRepository(gormDB).FindSnapshots(context.Background(), nil, time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
