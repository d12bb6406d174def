package habit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/habitus-app/habitus-api/internal/domain/repository"
	"github.com/habitus-app/habitus-api/internal/infra/metrics"
	"github.com/habitus-app/habitus-api/pkg/cache"
	"github.com/habitus-app/habitus-api/pkg/config"
	apierrors "github.com/habitus-app/habitus-api/pkg/errors"
	"go.uber.org/zap"
)

const (
	habitsCacheKey      = "habits"
	habitCacheKeyPrefix = "habit:"
)

// Service orquestra validação, regras de negócio e o repositório de hábitos.
// É o único componente que escreve no repositório.
type Service struct {
	repo     repository.HabitRepository
	cache    cache.Cache
	logger   *zap.Logger
	metrics  *metrics.APIMetrics
	validate *validator.Validate
	cfg      config.HabitsConfig
	cacheTTL time.Duration

	// Serializa as sequências verificar-e-agir (limite de ativos, unicidade
	// de nome, guarda de transição de status) entre requisições concorrentes.
	mu sync.Mutex
}

// NewService cria um novo serviço de hábitos
func NewService(repo repository.HabitRepository, c cache.Cache, cfg config.HabitsConfig, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		logger:   logger,
		validate: newValidator(),
		cfg:      cfg,
		cacheTTL: 5 * time.Minute,
	}
}

// SetMetrics configura o objeto de métricas
func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// SetCacheTTL ajusta o tempo de vida das entradas de cache
func (s *Service) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// List retorna todos os hábitos projetados para a forma resumida
func (s *Service) List(ctx context.Context) ([]model.HabitSummary, error) {
	var summaries []model.HabitSummary

	// Tentar cache primeiro
	found, err := s.cache.Get(ctx, habitsCacheKey, &summaries)
	if err != nil {
		s.logger.Warn("erro ao buscar hábitos do cache", zap.Error(err))
	} else if found {
		return summaries, nil
	}

	habits, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("erro ao listar hábitos do repositório", zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	summaries = make([]model.HabitSummary, 0, len(habits))
	for _, h := range habits {
		summaries = append(summaries, h.Summary())
	}

	if err := s.cache.Set(ctx, habitsCacheKey, summaries, s.cacheTTL); err != nil {
		s.logger.Warn("erro ao armazenar hábitos no cache", zap.Error(err))
	}

	return summaries, nil
}

// Create valida o payload, aplica as regras de negócio na ordem fixa
// (esquema, limite de ativos, nome duplicado) e insere o novo hábito
func (s *Service) Create(ctx context.Context, input CreateHabitInput) (*model.Habit, error) {
	if err := s.validate.Struct(input); err != nil {
		s.operation("create", "validation_error")
		return nil, apierrors.Validation(violationsFrom(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if active >= s.cfg.MaxActive {
		s.logger.Info("limite de hábitos ativos atingido",
			zap.Int("ativos", active),
			zap.Int("limite", s.cfg.MaxActive))
		s.operation("create", "limit_reached")
		return nil, apierrors.LimitReached(s.cfg.MaxActive)
	}

	// Unicidade vale para todos os status: um hábito arquivado ainda
	// bloqueia a criação de outro com o mesmo nome
	exists, err := s.repo.ExistsByName(ctx, input.Nome)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}
	if exists {
		s.operation("create", "duplicate_name")
		return nil, apierrors.DuplicateName(input.Nome)
	}

	habit := &model.Habit{
		ID:          uuid.NewString(),
		Nome:        input.Nome,
		Descricao:   input.Descricao,
		Categoria:   model.Categoria(input.Categoria),
		Icone:       input.Icone,
		Status:      model.StatusAtivo,
		DataCriacao: time.Now().UTC(),
		UsuarioID:   s.cfg.DefaultUserID,
		FusoHorario: input.FusoHorario,
	}

	if err := s.repo.Add(ctx, habit); err != nil {
		s.logger.Error("erro ao inserir hábito", zap.Error(err))
		return nil, apierrors.InternalServer("", err)
	}

	s.invalidate(ctx, habit.ID)
	s.operation("create", "success")
	if s.metrics != nil {
		s.metrics.SetActiveHabits(active + 1)
	}

	s.logger.Info("hábito criado",
		zap.String("id", habit.ID),
		zap.String("nome", habit.Nome),
		zap.String("categoria", string(habit.Categoria)))

	return habit, nil
}

// Get retorna o registro completo de um hábito
func (s *Service) Get(ctx context.Context, id string) (*model.Habit, error) {
	if apiErr := validateID(id); apiErr != nil {
		return nil, apiErr
	}

	var habit model.Habit
	found, err := s.cache.Get(ctx, habitCacheKeyPrefix+id, &habit)
	if err != nil {
		s.logger.Warn("erro ao buscar hábito do cache", zap.String("id", id), zap.Error(err))
	} else if found {
		return &habit, nil
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			return nil, apierrors.NotFound("hábito")
		}
		return nil, apierrors.InternalServer("", err)
	}

	if err := s.cache.Set(ctx, habitCacheKeyPrefix+id, h, s.cacheTTL); err != nil {
		s.logger.Warn("erro ao armazenar hábito no cache", zap.String("id", id), zap.Error(err))
	}

	return h, nil
}

// Update mescla nome, descrição, categoria e ícone no hábito existente.
// Status, data de criação, dono e fuso horário nunca são alterados aqui.
func (s *Service) Update(ctx context.Context, id string, input UpdateHabitInput) (*model.Habit, error) {
	if apiErr := validateID(id); apiErr != nil {
		return nil, apiErr
	}
	if err := s.validate.Struct(input); err != nil {
		s.operation("update", "validation_error")
		return nil, apierrors.Validation(violationsFrom(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			return nil, apierrors.NotFound("hábito")
		}
		return nil, apierrors.InternalServer("", err)
	}

	// A verificação de duplicidade só roda quando o nome muda de fato,
	// então renomear para o próprio nome atual é permitido
	if input.Nome != existing.Nome {
		exists, err := s.repo.ExistsByName(ctx, input.Nome)
		if err != nil {
			return nil, apierrors.InternalServer("", err)
		}
		if exists {
			s.operation("update", "duplicate_name")
			return nil, apierrors.DuplicateName(input.Nome)
		}
	}

	categoria := model.Categoria(input.Categoria)
	patch := model.HabitPatch{
		Nome:         &input.Nome,
		Descricao:    input.Descricao,
		DescricaoSet: true,
		Categoria:    &categoria,
		Icone:        &input.Icone,
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			return nil, apierrors.NotFound("hábito")
		}
		return nil, apierrors.InternalServer("", err)
	}

	s.invalidate(ctx, id)
	s.operation("update", "success")

	s.logger.Info("hábito atualizado", zap.String("id", id), zap.String("nome", updated.Nome))
	return updated, nil
}

// Delete remove um hábito definitivamente; não existe lixeira nem restauração
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if apiErr := validateID(id); apiErr != nil {
		return "", apiErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", apierrors.InternalServer("", err)
	}
	if !deleted {
		return "", apierrors.NotFound("hábito")
	}

	s.invalidate(ctx, id)
	s.operation("delete", "success")
	s.refreshActiveGauge(ctx)

	s.logger.Info("hábito excluído", zap.String("id", id))
	return "hábito excluído com sucesso", nil
}

// Archive transiciona o hábito de Ativo para Arquivado. O motivo do
// arquivamento é validado e descartado.
func (s *Service) Archive(ctx context.Context, id string, input ArchiveHabitInput) (string, error) {
	if apiErr := validateID(id); apiErr != nil {
		return "", apiErr
	}
	if err := s.validate.Struct(input); err != nil {
		s.operation("archive", "validation_error")
		return "", apierrors.Validation(violationsFrom(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			return "", apierrors.NotFound("hábito")
		}
		return "", apierrors.InternalServer("", err)
	}

	if existing.Status == model.StatusArquivado {
		s.operation("archive", "already_archived")
		return "", apierrors.AlreadyArchived()
	}

	status := model.StatusArquivado
	if _, err := s.repo.Update(ctx, id, model.HabitPatch{Status: &status}); err != nil {
		return "", apierrors.InternalServer("", err)
	}

	s.invalidate(ctx, id)
	s.operation("archive", "success")
	s.refreshActiveGauge(ctx)

	s.logger.Info("hábito arquivado", zap.String("id", id))
	return "hábito arquivado com sucesso", nil
}

// Restore transiciona o hábito de Arquivado de volta para Ativo
func (s *Service) Restore(ctx context.Context, id string) (string, error) {
	if apiErr := validateID(id); apiErr != nil {
		return "", apiErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			return "", apierrors.NotFound("hábito")
		}
		return "", apierrors.InternalServer("", err)
	}

	if existing.Status == model.StatusAtivo {
		s.operation("restore", "already_active")
		return "", apierrors.AlreadyActive()
	}

	status := model.StatusAtivo
	if _, err := s.repo.Update(ctx, id, model.HabitPatch{Status: &status}); err != nil {
		return "", apierrors.InternalServer("", err)
	}

	s.invalidate(ctx, id)
	s.operation("restore", "success")
	s.refreshActiveGauge(ctx)

	s.logger.Info("hábito restaurado", zap.String("id", id))
	return "hábito restaurado com sucesso", nil
}

// invalidate remove do cache a listagem e o registro afetado
func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, habitsCacheKey); err != nil {
		s.logger.Warn("erro ao invalidar cache de hábitos", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, habitCacheKeyPrefix+id); err != nil {
		s.logger.Warn("erro ao invalidar cache de hábito", zap.String("id", id), zap.Error(err))
	}
}

func (s *Service) operation(name, result string) {
	if s.metrics != nil {
		s.metrics.HabitOperation(name, result)
	}
}

func (s *Service) refreshActiveGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if count, err := s.repo.CountActive(ctx); err == nil {
		s.metrics.SetActiveHabits(count)
	}
}
