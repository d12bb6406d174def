package mocks

import (
	"context"

	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockHabitRepository é um mock para a interface HabitRepository
type MockHabitRepository struct {
	mock.Mock
}

func (m *MockHabitRepository) GetAll(ctx context.Context) ([]*model.Habit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Habit), args.Error(1)
}

func (m *MockHabitRepository) GetByID(ctx context.Context, id string) (*model.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}

func (m *MockHabitRepository) Add(ctx context.Context, habit *model.Habit) error {
	args := m.Called(ctx, habit)
	return args.Error(0)
}

func (m *MockHabitRepository) Update(ctx context.Context, id string, patch model.HabitPatch) (*model.Habit, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}

func (m *MockHabitRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHabitRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHabitRepository) ExistsByName(ctx context.Context, nome string) (bool, error) {
	args := m.Called(ctx, nome)
	return args.Bool(0), args.Error(1)
}

func (m *MockHabitRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
