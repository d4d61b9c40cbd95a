package testutil

import (
	"vocabsender/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVocabularyRepository is a mock for repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) LoadEntries() ([]domain.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

// MockStateRepository is a mock for repository.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Load() (*domain.State, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.State), args.Error(1)
}

func (m *MockStateRepository) Save(state *domain.State) error {
	args := m.Called(state)
	return args.Error(0)
}

// MockBackend is a mock for delivery.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBackend) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockBackend) Send(text string) error {
	args := m.Called(text)
	return args.Error(0)
}
