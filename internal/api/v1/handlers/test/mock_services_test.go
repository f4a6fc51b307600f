package test

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"briefly/internal/api/middleware"
	"briefly/internal/api/v1/dto"
	"briefly/internal/app/distill"
	"briefly/internal/app/model"
)

// MockServices contains all mock services for testing
type MockServices struct {
	DistillService  *MockDistillService
	ProviderService *MockProviderService
	StatsService    *MockStatsService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		DistillService:  NewMockDistillService(t),
		ProviderService: NewMockProviderService(t),
		StatsService:    NewMockStatsService(t),
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, *MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	return router, NewMockServices(t)
}

// MockDistillService is a mock implementation of DistillService
type MockDistillService struct {
	mock.Mock
}

func NewMockDistillService(t *testing.T) *MockDistillService {
	m := &MockDistillService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDistillService) ProcessChat(ctx context.Context, text string) (*model.DistillationResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DistillationResult), args.Error(1)
}

func (m *MockDistillService) ProcessFile(ctx context.Context, text, fileName string) (*model.DistillationResult, error) {
	args := m.Called(ctx, text, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DistillationResult), args.Error(1)
}

func (m *MockDistillService) ProcessCall(ctx context.Context, audio []byte, mimeHint, fileName string) (*model.DistillationResult, error) {
	args := m.Called(ctx, audio, mimeHint, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DistillationResult), args.Error(1)
}

func (m *MockDistillService) Health() distill.HealthReport {
	return m.Called().Get(0).(distill.HealthReport)
}

// MockProviderService is a mock implementation of ProviderService
type MockProviderService struct {
	mock.Mock
}

func NewMockProviderService(t *testing.T) *MockProviderService {
	m := &MockProviderService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProviderService) ListProviders(ctx context.Context, query dto.ProviderListQuery) ([]dto.ProviderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProviderResponse), args.Error(1)
}

func (m *MockProviderService) GetProvider(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProviderResponse), args.Error(1)
}

func (m *MockProviderService) GetProviderStats(ctx context.Context, id string) (*dto.ProviderStatsResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProviderStatsResponse), args.Error(1)
}

func (m *MockProviderService) Chains(ctx context.Context) (*dto.ChainsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChainsResponse), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func NewMockStatsService(t *testing.T) *MockStatsService {
	m := &MockStatsService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStatsService) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SystemStats), args.Error(1)
}
