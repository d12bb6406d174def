package model

import (
	"time"
)

// Status representa o estado do ciclo de vida de um hábito
type Status string

const (
	StatusAtivo     Status = "Ativo"
	StatusArquivado Status = "Arquivado"
	// StatusInativo é declarado no domínio mas nenhuma operação o produz.
	// Reservado para funcionalidade futura.
	StatusInativo Status = "Inativo"
)

// Categoria representa a categoria de um hábito
type Categoria string

const (
	CategoriaSaude         Categoria = "Saúde"
	CategoriaFitness       Categoria = "Fitness"
	CategoriaProdutividade Categoria = "Produtividade"
	CategoriaEducacao      Categoria = "Educação"
	CategoriaFinancas      Categoria = "Finanças"
	CategoriaBemEstar      Categoria = "Bem-estar"
	CategoriaOutros        Categoria = "Outros"
)

// Categorias lista todas as categorias válidas
var Categorias = []Categoria{
	CategoriaSaude,
	CategoriaFitness,
	CategoriaProdutividade,
	CategoriaEducacao,
	CategoriaFinancas,
	CategoriaBemEstar,
	CategoriaOutros,
}

// CategoriaValida verifica se o valor pertence à enumeração de categorias
func CategoriaValida(c Categoria) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// Habit é a representação de domínio de um hábito
type Habit struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	Descricao   *string   `json:"descricao"`
	Categoria   Categoria `json:"categoria"`
	Icone       string    `json:"icone"`
	Status      Status    `json:"status"`
	DataCriacao time.Time `json:"data_criacao"`
	UsuarioID   string    `json:"usuario_id"`
	FusoHorario string    `json:"fuso_horario"`
}

// Clone retorna uma cópia profunda do hábito. O repositório devolve sempre
// cópias para que chamadores nunca alterem o estado interno do armazenamento.
func (h *Habit) Clone() *Habit {
	clone := *h
	if h.Descricao != nil {
		descricao := *h.Descricao
		clone.Descricao = &descricao
	}
	return &clone
}

// HabitSummary é a projeção resumida usada na listagem
type HabitSummary struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	Categoria   Categoria `json:"categoria"`
	Icone       string    `json:"icone"`
	Status      Status    `json:"status"`
	DataCriacao time.Time `json:"data_criacao"`
}

// Summary projeta o hábito para a forma resumida, omitindo descrição,
// usuário e fuso horário
func (h *Habit) Summary() HabitSummary {
	return HabitSummary{
		ID:          h.ID,
		Nome:        h.Nome,
		Categoria:   h.Categoria,
		Icone:       h.Icone,
		Status:      h.Status,
		DataCriacao: h.DataCriacao,
	}
}

// HabitPatch contém os campos atualizáveis de um hábito. Ponteiros nil
// indicam campos ausentes que não devem ser alterados na mesclagem.
// Descricao é anulável: DescricaoSet distingue "ausente" de "definir como nulo".
type HabitPatch struct {
	Nome         *string
	Descricao    *string
	DescricaoSet bool
	Categoria    *Categoria
	Icone        *string
	Status       *Status
}

// Apply mescla os campos presentes do patch no hábito
func (h *Habit) Apply(patch HabitPatch) {
	if patch.Nome != nil {
		h.Nome = *patch.Nome
	}
	if patch.DescricaoSet {
		h.Descricao = patch.Descricao
	}
	if patch.Categoria != nil {
		h.Categoria = *patch.Categoria
	}
	if patch.Icone != nil {
		h.Icone = *patch.Icone
	}
	if patch.Status != nil {
		h.Status = *patch.Status
	}
}
