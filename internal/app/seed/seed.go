package seed

import (
	"context"
	"encoding/json"
	"os"

	"github.com/habitus-app/habitus-api/internal/app/habit"
	apierrors "github.com/habitus-app/habitus-api/pkg/errors"
	"go.uber.org/zap"
)

// LoadHabits lê a lista de hábitos iniciais de um arquivo JSON
func LoadHabits(filePath string) ([]habit.CreateHabitInput, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	inputs := []habit.CreateHabitInput{}
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&inputs)
	return inputs, err
}

// LoadAndCreateHabits carrega o arquivo de seed e cria cada hábito através
// do serviço, mantendo as regras de validação e de limite. Hábitos cujo
// nome já existe são ignorados com um aviso.
func LoadAndCreateHabits(ctx context.Context, service *habit.Service, filePath string, logger *zap.Logger) error {
	inputs, err := LoadHabits(filePath)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		if _, err := service.Create(ctx, input); err != nil {
			apiErr := apierrors.FromError(err)
			if apiErr.Code == apierrors.CodeDuplicateName {
				// Se o hábito já existir, apenas logue um aviso e continue
				logger.Warn("Hábito de seed já existe", zap.String("nome", input.Nome))
				continue
			}
			logger.Error("Falha ao criar hábito de seed", zap.String("nome", input.Nome), zap.Error(err))
			return err
		}
	}

	return nil
}
