package memory_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitus-app/habitus-api/internal/adapter/memory"
	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/habitus-app/habitus-api/internal/domain/repository"
	"github.com/habitus-app/habitus-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHabit(nome string, status model.Status) *model.Habit {
	return &model.Habit{
		ID:          uuid.NewString(),
		Nome:        nome,
		Categoria:   model.CategoriaSaude,
		Icone:       "heart",
		Status:      status,
		DataCriacao: time.Now().UTC(),
		UsuarioID:   "00000000-0000-0000-0000-000000000001",
		FusoHorario: "America/Sao_Paulo",
	}
}

func TestHabitRepository_AddAndGet(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	h := newHabit("Beber água", model.StatusAtivo)
	require.NoError(t, repo.Add(ctx, h))

	found, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h, found)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
}

func TestHabitRepository_AddDuplicateID(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	h := newHabit("Beber água", model.StatusAtivo)
	require.NoError(t, repo.Add(ctx, h))
	assert.ErrorIs(t, repo.Add(ctx, h), repository.ErrHabitExists)
}

func TestHabitRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	h := newHabit("Meditar", model.StatusAtivo)
	descricao := "todos os dias"
	h.Descricao = &descricao
	require.NoError(t, repo.Add(ctx, h))

	// Alterar o registro original após a inserção não afeta o armazenado
	h.Nome = "Alterado"
	*h.Descricao = "alterada"

	stored, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meditar", stored.Nome)
	assert.Equal(t, "todos os dias", *stored.Descricao)

	// Alterar o registro devolvido não afeta o armazenado
	stored.Nome = "Outra alteração"
	again, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meditar", again.Nome)
}

func TestHabitRepository_GetAllInsertionOrder(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	first := newHabit("Primeiro", model.StatusAtivo)
	second := newHabit("Segundo", model.StatusAtivo)
	third := newHabit("Terceiro", model.StatusArquivado)

	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))
	require.NoError(t, repo.Add(ctx, third))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Primeiro", all[0].Nome)
	assert.Equal(t, "Segundo", all[1].Nome)
	assert.Equal(t, "Terceiro", all[2].Nome)
}

func TestHabitRepository_UpdateMerge(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	h := newHabit("Meditar", model.StatusAtivo)
	descricao := "dez minutos"
	h.Descricao = &descricao
	require.NoError(t, repo.Add(ctx, h))

	t.Run("only present fields change", func(t *testing.T) {
		nome := "Meditar à noite"
		updated, err := repo.Update(ctx, h.ID, model.HabitPatch{Nome: &nome})
		require.NoError(t, err)

		assert.Equal(t, "Meditar à noite", updated.Nome)
		assert.Equal(t, "dez minutos", *updated.Descricao)
		assert.Equal(t, model.CategoriaSaude, updated.Categoria)
		assert.Equal(t, model.StatusAtivo, updated.Status)
		assert.Equal(t, h.FusoHorario, updated.FusoHorario)
		assert.Equal(t, h.DataCriacao, updated.DataCriacao)
	})

	t.Run("descricao can be set to null", func(t *testing.T) {
		updated, err := repo.Update(ctx, h.ID, model.HabitPatch{DescricaoSet: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Descricao)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.NewString(), model.HabitPatch{})
		assert.ErrorIs(t, err, repository.ErrHabitNotFound)
	})
}

func TestHabitRepository_Delete(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	h := newHabit("Meditar", model.StatusAtivo)
	require.NoError(t, repo.Add(ctx, h))

	existed, err := repo.Delete(ctx, h.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = repo.GetByID(ctx, h.ID)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)

	existed, err = repo.Delete(ctx, h.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHabitRepository_Predicates(t *testing.T) {
	repo := memory.NewHabitRepository(testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	active := newHabit("Meditar", model.StatusAtivo)
	archived := newHabit("Correr", model.StatusArquivado)
	require.NoError(t, repo.Add(ctx, active))
	require.NoError(t, repo.Add(ctx, archived))

	t.Run("exists by id", func(t *testing.T) {
		ok, err := repo.Exists(ctx, active.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("name uniqueness covers archived habits", func(t *testing.T) {
		ok, err := repo.ExistsByName(ctx, "Correr")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("name comparison is case sensitive", func(t *testing.T) {
		ok, err := repo.ExistsByName(ctx, "correr")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("only active habits count toward the cap", func(t *testing.T) {
		count, err := repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
