package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bdrdragon/internal/auth"
	"bdrdragon/internal/model"
	"bdrdragon/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, caller service.Caller, in service.UpdateProfileInput) (*model.User, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]service.UserWithMarkets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.UserWithMarkets), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, in service.CreateUserInput) (*service.UserWithMarkets, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserWithMarkets), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, in service.UpdateUserInput) (*service.UserWithMarkets, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserWithMarkets), args.Error(1)
}

func (m *MockUserService) SetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	args := m.Called(ctx, id, newPassword)
	return args.Error(0)
}

type MockKpiService struct {
	mock.Mock
}

func (m *MockKpiService) ResolveTargets(ctx context.Context, caller service.Caller, requestedUserID string) ([]uuid.UUID, error) {
	args := m.Called(ctx, caller, requestedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockKpiService) Actuals(ctx context.Context, caller service.Caller, rangeType, requestedUserID string) (*service.ActualsReport, error) {
	args := m.Called(ctx, caller, rangeType, requestedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActualsReport), args.Error(1)
}

func (m *MockKpiService) Forecast(ctx context.Context, caller service.Caller, rangeType, requestedUserID string) (*service.ForecastReport, error) {
	args := m.Called(ctx, caller, rangeType, requestedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ForecastReport), args.Error(1)
}

func (m *MockKpiService) RecordSnapshot(ctx context.Context, in service.SnapshotInput) (*model.KpiSnapshot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KpiSnapshot), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListLists(ctx context.Context, userID uuid.UUID) ([]model.TaskList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskList), args.Error(1)
}

func (m *MockTaskService) CreateList(ctx context.Context, userID uuid.UUID, name string) (*model.TaskList, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskList), args.Error(1)
}

func (m *MockTaskService) RenameList(ctx context.Context, userID, listID uuid.UUID, name string) (*model.TaskList, error) {
	args := m.Called(ctx, userID, listID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskList), args.Error(1)
}

func (m *MockTaskService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	args := m.Called(ctx, userID, listID)
	return args.Error(0)
}

func (m *MockTaskService) ListTasks(ctx context.Context, userID, listID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, in service.UpdateTaskInput) (*service.TaskUpdateResult, error) {
	args := m.Called(ctx, userID, taskID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskUpdateResult), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type MockIntegrationService struct {
	mock.Mock
}

func (m *MockIntegrationService) Status(ctx context.Context) (*model.IntegrationStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IntegrationStatus), args.Error(1)
}

func (m *MockIntegrationService) Sync(ctx context.Context) (*service.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) List(ctx context.Context) ([]model.Market, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Market), args.Error(1)
}

func (m *MockMarketService) Create(ctx context.Context, in service.MarketInput) (*model.Market, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Market), args.Error(1)
}

func (m *MockMarketService) Update(ctx context.Context, id uuid.UUID, in service.MarketUpdateInput) (*model.Market, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Market), args.Error(1)
}

func (m *MockMarketService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMarketService) ForUser(ctx context.Context, userID uuid.UUID) ([]model.Market, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Market), args.Error(1)
}
