package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/integration/virtuagym"
	"github.com/fysiofunnel/api/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListRecent(ctx context.Context, practiceCode string, limit int) ([]entity.Lead, error) {
	args := m.Called(ctx, practiceCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

// MockEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, ev *entity.FunnelEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventRepository) ListByPracticeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]entity.FunnelEvent, error) {
	args := m.Called(ctx, practiceCode, from, toExclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FunnelEvent), args.Error(1)
}

func (m *MockEventRepository) CountByTypeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) (map[entity.EventType]int, error) {
	args := m.Called(ctx, practiceCode, from, toExclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.EventType]int), args.Error(1)
}

func (m *MockEventRepository) DailyCountsRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]entity.DailyCount, error) {
	args := m.Called(ctx, practiceCode, from, toExclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DailyCount), args.Error(1)
}

// MockPracticeDirectory
type MockPracticeDirectory struct {
	mock.Mock
}

func (m *MockPracticeDirectory) FindByCode(ctx context.Context, code string) (*entity.Practice, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Practice), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishNotification(ctx context.Context, payload queue.NotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockMemberFetcher
type MockMemberFetcher struct {
	mock.Mock
}

func (m *MockMemberFetcher) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMemberFetcher) FetchMembers(ctx context.Context, since time.Time) ([]virtuagym.Member, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]virtuagym.Member), args.Error(1)
}

// MockTokenCodec
type MockTokenCodec struct {
	mock.Mock
}

func (m *MockTokenCodec) Issue(leadID int64, practiceCode string) string {
	args := m.Called(leadID, practiceCode)
	return args.String(0)
}

func (m *MockTokenCodec) Validate(token string, leadID int64, practiceCode string) bool {
	args := m.Called(token, leadID, practiceCode)
	return args.Bool(0)
}
