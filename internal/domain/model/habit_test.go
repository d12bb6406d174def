package model_test

import (
	"testing"
	"time"

	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHabit() *model.Habit {
	descricao := "10 minutos por dia"
	return &model.Habit{
		ID:          "a81bc81b-dead-4e5d-abff-90865d1e13b1",
		Nome:        "Meditar",
		Descricao:   &descricao,
		Categoria:   model.CategoriaBemEstar,
		Icone:       "sparkles",
		Status:      model.StatusAtivo,
		DataCriacao: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		UsuarioID:   "00000000-0000-0000-0000-000000000001",
		FusoHorario: "America/Sao_Paulo",
	}
}

func TestHabitClone(t *testing.T) {
	original := sampleHabit()
	clone := original.Clone()

	require.Equal(t, original, clone)

	*clone.Descricao = "alterada"
	clone.Nome = "Outro"

	assert.Equal(t, "Meditar", original.Nome)
	assert.Equal(t, "10 minutos por dia", *original.Descricao)
}

func TestHabitCloneNilDescricao(t *testing.T) {
	original := sampleHabit()
	original.Descricao = nil

	clone := original.Clone()
	assert.Nil(t, clone.Descricao)
}

func TestHabitSummary(t *testing.T) {
	habit := sampleHabit()
	summary := habit.Summary()

	assert.Equal(t, habit.ID, summary.ID)
	assert.Equal(t, habit.Nome, summary.Nome)
	assert.Equal(t, habit.Categoria, summary.Categoria)
	assert.Equal(t, habit.Icone, summary.Icone)
	assert.Equal(t, habit.Status, summary.Status)
	assert.True(t, habit.DataCriacao.Equal(summary.DataCriacao))
}

func TestHabitApply(t *testing.T) {
	t.Run("campos ausentes não são alterados", func(t *testing.T) {
		habit := sampleHabit()
		habit.Apply(model.HabitPatch{})

		assert.Equal(t, sampleHabit(), habit)
	})

	t.Run("campos presentes são mesclados", func(t *testing.T) {
		habit := sampleHabit()
		nome := "Meditar à noite"
		categoria := model.CategoriaSaude
		status := model.StatusArquivado

		habit.Apply(model.HabitPatch{
			Nome:      &nome,
			Categoria: &categoria,
			Status:    &status,
		})

		assert.Equal(t, nome, habit.Nome)
		assert.Equal(t, categoria, habit.Categoria)
		assert.Equal(t, status, habit.Status)
		assert.Equal(t, "sparkles", habit.Icone)
		assert.NotNil(t, habit.Descricao)
	})

	t.Run("descrição pode ser definida como nula", func(t *testing.T) {
		habit := sampleHabit()
		habit.Apply(model.HabitPatch{DescricaoSet: true, Descricao: nil})

		assert.Nil(t, habit.Descricao)
	})
}

func TestCategoriaValida(t *testing.T) {
	for _, categoria := range model.Categorias {
		assert.True(t, model.CategoriaValida(categoria))
	}

	assert.False(t, model.CategoriaValida("Esportes"))
	assert.False(t, model.CategoriaValida(""))
	assert.False(t, model.CategoriaValida("saúde"))
}
