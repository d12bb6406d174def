package memory

import (
	"context"
	"sync"

	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/habitus-app/habitus-api/internal/domain/repository"
	"go.uber.org/zap"
)

// HabitRepository implementa repository.HabitRepository com um mapa em memória.
// O repositório é o dono exclusivo dos registros: toda leitura devolve cópias
// e toda escrita passa por ele. O processo inteiro compartilha uma única
// instância, construída explicitamente e injetada onde for necessária.
type HabitRepository struct {
	mu     sync.RWMutex
	habits map[string]*model.Habit
	order  []string
	logger *zap.Logger
}

// NewHabitRepository cria um novo repositório em memória vazio
func NewHabitRepository(logger *zap.Logger) *HabitRepository {
	return &HabitRepository{
		habits: make(map[string]*model.Habit),
		logger: logger,
	}
}

// GetAll retorna cópias de todos os hábitos em ordem de inserção
func (r *HabitRepository) GetAll(ctx context.Context) ([]*model.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*model.Habit, 0, len(r.habits))
	for _, id := range r.order {
		if h, ok := r.habits[id]; ok {
			habits = append(habits, h.Clone())
		}
	}
	return habits, nil
}

// GetByID obtém uma cópia do hábito pelo id
func (r *HabitRepository) GetByID(ctx context.Context, id string) (*model.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.habits[id]
	if !ok {
		return nil, repository.ErrHabitNotFound
	}
	return h.Clone(), nil
}

// Add insere um hábito. As invariantes de negócio (limite de ativos,
// unicidade de nome) já foram verificadas pelo serviço.
func (r *HabitRepository) Add(ctx context.Context, habit *model.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.habits[habit.ID]; ok {
		return repository.ErrHabitExists
	}

	r.habits[habit.ID] = habit.Clone()
	r.order = append(r.order, habit.ID)

	r.logger.Debug("hábito inserido no repositório",
		zap.String("id", habit.ID),
		zap.String("nome", habit.Nome))
	return nil
}

// Update mescla os campos presentes do patch no registro existente
func (r *HabitRepository) Update(ctx context.Context, id string, patch model.HabitPatch) (*model.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.habits[id]
	if !ok {
		return nil, repository.ErrHabitNotFound
	}

	h.Apply(patch)
	return h.Clone(), nil
}

// Delete remove um hábito; o id nunca é reutilizado porque ids são UUIDs
// gerados a cada criação
func (r *HabitRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.habits[id]; !ok {
		return false, nil
	}

	delete(r.habits, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Exists verifica se um id está presente
func (r *HabitRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.habits[id]
	return ok, nil
}

// ExistsByName verifica a unicidade de nome em todo o repositório,
// comparação exata sensível a maiúsculas, independente de status
func (r *HabitRepository) ExistsByName(ctx context.Context, nome string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.habits {
		if h.Nome == nome {
			return true, nil
		}
	}
	return false, nil
}

// CountActive conta os hábitos com status Ativo; arquivados e inativos
// não contam para o limite
func (r *HabitRepository) CountActive(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, h := range r.habits {
		if h.Status == model.StatusAtivo {
			count++
		}
	}
	return count, nil
}
