package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/queue"
)

func newActionFixture() (*MockLeadRepository, *MockEventRepository, *MockPracticeDirectory, *MockTokenCodec, *MockNotifier, *LeadActionUseCase) {
	leads := new(MockLeadRepository)
	events := new(MockEventRepository)
	directory := new(MockPracticeDirectory)
	tokens := new(MockTokenCodec)
	notifier := new(MockNotifier)

	uc := NewLeadActionUseCase(leads, events, directory, tokens, notifier)
	return leads, events, directory, tokens, notifier, uc
}

func validActionInput() LeadActionInput {
	return LeadActionInput{
		Action:       "appointment_booked",
		LeadID:       "42",
		PracticeCode: "AMS-001",
		Token:        strings.Repeat("a", 64),
	}
}

func TestLeadActionSuccess(t *testing.T) {
	ctx := context.Background()
	leads, events, directory, tokens, notifier, uc := newActionFixture()

	tokens.On("Validate", strings.Repeat("a", 64), int64(42), "AMS-001").Return(true)

	var inserted *entity.FunnelEvent
	events.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*entity.FunnelEvent)
		inserted.ID = 321
	}).Return(nil)

	leads.On("FindByID", ctx, int64(42)).Return(&entity.Lead{
		ID:       42,
		FullName: "Sanne Bakker",
		Email:    "sanne@voorbeeld.nl",
	}, nil)
	directory.On("FindByCode", ctx, "AMS-001").Return(&entity.Practice{
		Code: "AMS-001",
		Name: "Fysio Amsterdam Zuid",
	}, nil)

	published := make(chan queue.NotificationPayload, 1)
	notifier.On("PublishNotification", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published <- args.Get(1).(queue.NotificationPayload)
	}).Return(nil)

	output, err := uc.Execute(ctx, validActionInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), output.LeadID)
	assert.Equal(t, int64(321), output.EventID)
	assert.Equal(t, "Sanne Bakker", output.LeadName)

	assert.Equal(t, entity.EventAppointmentBooked, inserted.EventType)
	assert.Equal(t, entity.ActorEmailLink, inserted.Actor)
	assert.Equal(t, int64(42), *inserted.LeadID)

	select {
	case payload := <-published:
		assert.Equal(t, queue.KindBookingConfirmed, payload.Kind)
		assert.Equal(t, "sanne@voorbeeld.nl", payload.To)
		assert.Equal(t, "Fysio Amsterdam Zuid", payload.PracticeName)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation was never published")
	}
}

func TestLeadActionMissingParams(t *testing.T) {
	ctx := context.Background()
	_, events, _, tokens, _, uc := newActionFixture()

	output, err := uc.Execute(ctx, LeadActionInput{Action: "appointment_booked"})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsDomainError(err))

	domainErr := err.(*DomainError)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Len(t, domainErr.Fields, 3)

	tokens.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLeadActionNonNumericLeadID(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, _, uc := newActionFixture()

	input := validActionInput()
	input.LeadID = "abc"

	output, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, err.(*DomainError).Code)
}

func TestLeadActionUnknownAction(t *testing.T) {
	ctx := context.Background()
	_, events, _, _, _, uc := newActionFixture()

	input := validActionInput()
	input.Action = "cancelled"

	output, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, CodeUnknownAction, err.(*DomainError).Code)
	events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLeadActionRejectedToken(t *testing.T) {
	ctx := context.Background()
	_, events, _, tokens, _, uc := newActionFixture()

	tokens.On("Validate", mock.Anything, int64(42), "AMS-001").Return(false)

	output, err := uc.Execute(ctx, validActionInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, CodeUnauthorized, err.(*DomainError).Code)
	// The rejection message carries no hint about what failed.
	assert.Equal(t, "unauthorized", err.Error())
	events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// A link can reference a lead that never landed in our table. The event is
// still recorded, only the confirmation mail is skipped.
func TestLeadActionDanglingLead(t *testing.T) {
	ctx := context.Background()
	leads, events, _, tokens, notifier, uc := newActionFixture()

	tokens.On("Validate", mock.Anything, int64(42), "AMS-001").Return(true)
	events.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.FunnelEvent).ID = 88
	}).Return(nil)
	leads.On("FindByID", ctx, int64(42)).Return(nil, entity.ErrLeadNotFound)

	output, err := uc.Execute(ctx, validActionInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(88), output.EventID)
	assert.Empty(t, output.LeadName)
	notifier.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything)
}

func TestLeadActionStorageFailure(t *testing.T) {
	ctx := context.Background()
	leads, events, _, tokens, _, uc := newActionFixture()

	tokens.On("Validate", mock.Anything, int64(42), "AMS-001").Return(true)
	events.On("Insert", ctx, mock.Anything).Return(errors.New("connection reset"))

	output, err := uc.Execute(ctx, validActionInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
	leads.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLeadActionSkipsMailWhenLeadHasNoEmail(t *testing.T) {
	ctx := context.Background()
	leads, events, _, tokens, notifier, uc := newActionFixture()

	tokens.On("Validate", mock.Anything, int64(42), "AMS-001").Return(true)
	events.On("Insert", ctx, mock.Anything).Return(nil)
	leads.On("FindByID", ctx, int64(42)).Return(&entity.Lead{ID: 42, FullName: "Pieter Jansen"}, nil)

	output, err := uc.Execute(ctx, validActionInput())

	assert.NoError(t, err)
	assert.Equal(t, "Pieter Jansen", output.LeadName)
	notifier.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything)
}
