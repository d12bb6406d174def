package repository

import (
	"context"
	"errors"

	"github.com/habitus-app/habitus-api/internal/domain/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitExists   = errors.New("habit already exists")
)

// HabitRepository define a interface para armazenamento de hábitos
type HabitRepository interface {
	// GetAll retorna todos os hábitos em ordem de inserção
	GetAll(ctx context.Context) ([]*model.Habit, error)

	// GetByID obtém um hábito pelo id; ErrHabitNotFound se ausente
	GetByID(ctx context.Context, id string) (*model.Habit, error)

	// Add insere um hábito já totalmente formado; ErrHabitExists se o id já existe
	Add(ctx context.Context, habit *model.Habit) error

	// Update mescla os campos do patch no hábito existente e retorna o
	// registro resultante; ErrHabitNotFound se ausente
	Update(ctx context.Context, id string, patch model.HabitPatch) (*model.Habit, error)

	// Delete remove um hábito; retorna se ele existia
	Delete(ctx context.Context, id string) (bool, error)

	// Exists verifica se um id está presente
	Exists(ctx context.Context, id string) (bool, error)

	// ExistsByName verifica se algum hábito possui exatamente o nome dado,
	// independente de status
	ExistsByName(ctx context.Context, nome string) (bool, error)

	// CountActive conta os hábitos com status Ativo
	CountActive(ctx context.Context) (int, error)
}
