package habit

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/habitus-app/habitus-api/internal/domain/model"
	apierrors "github.com/habitus-app/habitus-api/pkg/errors"
)

// CreateHabitInput é o payload de criação de hábito
type CreateHabitInput struct {
	Nome        string  `json:"nome" validate:"required,min=3,max=50"`
	Descricao   *string `json:"descricao" validate:"omitempty,max=200"`
	Categoria   string  `json:"categoria" validate:"required,categoria"`
	Icone       string  `json:"icone" validate:"required"`
	FusoHorario string  `json:"fuso_horario" validate:"required"`
}

// UpdateHabitInput é o payload de atualização: igual ao de criação,
// exceto pelo fuso horário, que é imutável após a criação
type UpdateHabitInput struct {
	Nome      string  `json:"nome" validate:"required,min=3,max=50"`
	Descricao *string `json:"descricao" validate:"omitempty,max=200"`
	Categoria string  `json:"categoria" validate:"required,categoria"`
	Icone     string  `json:"icone" validate:"required"`
}

// ArchiveHabitInput é o payload de arquivamento. O motivo é exigido e
// validado, mas não é persistido nem devolvido ao chamador.
type ArchiveHabitInput struct {
	MotivoArquivamento string `json:"motivo_arquivamento" validate:"required,min=1,max=200"`
}

// newValidator cria o validador com o nome de campo vindo da tag json
// e a regra de pertencimento à enumeração de categorias
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A enumeração de categorias vive no domínio; o validador só consulta
	_ = v.RegisterValidation("categoria", func(fl validator.FieldLevel) bool {
		return model.CategoriaValida(model.Categoria(fl.Field().String()))
	})

	return v
}

// violationsFrom converte erros do validador na lista de violações de campo
func violationsFrom(err error) []apierrors.FieldViolation {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apierrors.FieldViolation{{Field: "_body", Message: err.Error()}}
	}

	violations := make([]apierrors.FieldViolation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, apierrors.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "categoria":
		return "deve ser uma categoria válida"
	default:
		return fmt.Sprintf("falhou na validação %q", fe.Tag())
	}
}

// validateID exige que o id tenha forma de UUID
func validateID(id string) *apierrors.APIError {
	if _, err := uuid.Parse(id); err != nil {
		return apierrors.Validation([]apierrors.FieldViolation{
			{Field: "id", Message: "deve ser um UUID válido"},
		})
	}
	return nil
}
