package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitus-app/habitus-api/internal/app/habit"
	"github.com/habitus-app/habitus-api/internal/infra/metrics"
	apierrors "github.com/habitus-app/habitus-api/pkg/errors"
	"go.uber.org/zap"
)

// HabitHandler implementa os handlers HTTP para o recurso de hábitos
type HabitHandler struct {
	habitService *habit.Service
	logger       *zap.Logger
	metrics      *metrics.APIMetrics
}

// NewHabitHandler cria um novo handler de hábitos
func NewHabitHandler(habitService *habit.Service, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		logger:       logger,
	}
}

// SetMetrics configura o objeto de métricas
func (h *HabitHandler) SetMetrics(m *metrics.APIMetrics) {
	h.metrics = m
}

// ListHabits lista todos os hábitos na forma resumida
func (h *HabitHandler) ListHabits(c *gin.Context) {
	summaries, err := h.habitService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Falha ao listar hábitos", zap.Error(err))
		h.requestError(c, "list_habits_error")
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, summaries)
}

// CreateHabit cria um novo hábito
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var input habit.CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, malformedBody(err))
		return
	}

	created, err := h.habitService.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Warn("Falha ao criar hábito", zap.Error(err))
		h.requestError(c, "create_habit_error")
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, created)
}

// GetHabit retorna o registro completo de um hábito
func (h *HabitHandler) GetHabit(c *gin.Context) {
	found, err := h.habitService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.requestError(c, "get_habit_error")
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, found)
}

// UpdateHabit atualiza nome, descrição, categoria e ícone de um hábito
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	var input habit.UpdateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, malformedBody(err))
		return
	}

	updated, err := h.habitService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.logger.Warn("Falha ao atualizar hábito", zap.Error(err))
		h.requestError(c, "update_habit_error")
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, updated)
}

// DeleteHabit remove um hábito definitivamente
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	message, err := h.habitService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.requestError(c, "delete_habit_error")
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, message)
}

// ArchiveHabit transiciona um hábito para Arquivado
func (h *HabitHandler) ArchiveHabit(c *gin.Context) {
	var input habit.ArchiveHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, malformedBody(err))
		return
	}

	message, err := h.habitService.Archive(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.requestError(c, "archive_habit_error")
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, message)
}

// RestoreHabit transiciona um hábito arquivado de volta para Ativo
func (h *HabitHandler) RestoreHabit(c *gin.Context) {
	message, err := h.habitService.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.requestError(c, "restore_habit_error")
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, message)
}

func (h *HabitHandler) requestError(c *gin.Context, errorType string) {
	if h.metrics != nil {
		h.metrics.RequestError(c.FullPath(), c.Request.Method, errorType)
	}
}

// malformedBody traduz falhas de parse do JSON em erro de validação
func malformedBody(err error) *apierrors.APIError {
	return apierrors.Validation([]apierrors.FieldViolation{
		{Field: "_body", Message: "corpo da requisição não é um JSON válido: " + err.Error()},
	})
}
