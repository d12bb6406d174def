package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	apihttp "github.com/habitus-app/habitus-api/internal/adapter/http"
	"github.com/habitus-app/habitus-api/internal/adapter/memory"
	"github.com/habitus-app/habitus-api/internal/app/habit"
	"github.com/habitus-app/habitus-api/internal/domain/model"
	"github.com/habitus-app/habitus-api/internal/testutils"
	"github.com/habitus-app/habitus-api/pkg/cache"
	"github.com/habitus-app/habitus-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func setupAPI(t *testing.T, maxActive int) *gin.Engine {
	t.Helper()

	logger := testutils.TestLogger(t)
	repo := memory.NewHabitRepository(logger)
	cfg := config.HabitsConfig{
		MaxActive:     maxActive,
		DefaultUserID: "00000000-0000-0000-0000-000000000001",
	}
	service := habit.NewService(repo, &cache.NoOpCache{}, cfg, logger)
	handler := apihttp.NewHabitHandler(service, logger)

	router := testutils.SetupTestRouter(t)
	habits := router.Group("/habit")
	{
		habits.GET("", handler.ListHabits)
		habits.POST("", handler.CreateHabit)
		habits.GET("/:id", handler.GetHabit)
		habits.PUT("/:id", handler.UpdateHabit)
		habits.DELETE("/:id", handler.DeleteHabit)
		habits.POST("/:id/archive", handler.ArchiveHabit)
		habits.POST("/:id/restore", handler.RestoreHabit)
	}
	return router
}

func createHabit(t *testing.T, router *gin.Engine, nome string) *model.Habit {
	t.Helper()

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/habit", gin.H{
		"nome":         nome,
		"categoria":    "Bem-estar",
		"icone":        "sparkles",
		"fuso_horario": "America/Sao_Paulo",
		"descricao":    nil,
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var env envelope
	testutils.ParseResponse(t, resp, &env)
	require.True(t, env.Success)

	var created model.Habit
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return &created
}

func TestHabitAPI_LifecycleScenario(t *testing.T) {
	router := setupAPI(t, 20)

	// Criação retorna 201 com o registro completo e status Ativo
	created := createHabit(t, router, "Meditar")
	assert.Equal(t, model.StatusAtivo, created.Status)
	assert.Equal(t, "Meditar", created.Nome)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Descricao)

	// Arquivar com motivo retorna confirmação
	resp := testutils.MakeRequest(t, router, http.MethodPost,
		fmt.Sprintf("/habit/%s/archive", created.ID),
		gin.H{"motivo_arquivamento": "Não uso mais"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var env envelope
	testutils.ParseResponse(t, resp, &env)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Message)

	// A listagem mostra o hábito com status Arquivado na forma resumida
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/habit", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &env)

	var summaries []model.HabitSummary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, model.StatusArquivado, summaries[0].Status)

	// Restaurar volta o status para Ativo
	resp = testutils.MakeRequest(t, router, http.MethodPost,
		fmt.Sprintf("/habit/%s/restore", created.ID), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/habit", nil, nil)
	testutils.ParseResponse(t, resp, &env)
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, model.StatusAtivo, summaries[0].Status)

	// Arquivar e restaurar não alteram os demais campos
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/habit/"+created.ID, nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &env)

	var roundTripped model.Habit
	require.NoError(t, json.Unmarshal(env.Data, &roundTripped))
	assert.Equal(t, created.Nome, roundTripped.Nome)
	assert.Equal(t, created.Categoria, roundTripped.Categoria)
	assert.Equal(t, created.Icone, roundTripped.Icone)
	assert.Equal(t, created.FusoHorario, roundTripped.FusoHorario)
	assert.Equal(t, created.UsuarioID, roundTripped.UsuarioID)
	assert.True(t, created.DataCriacao.Equal(roundTripped.DataCriacao))
}

func TestHabitAPI_CreateValidation(t *testing.T) {
	router := setupAPI(t, 20)

	t.Run("schema violations return 400 with field details", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/habit", gin.H{
			"nome": "ab",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.NotEmpty(t, env.Error.Details)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/habit", "{nao é json", nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("duplicate name returns 400 DUPLICATE_NAME", func(t *testing.T) {
		createHabit(t, router, "Beber água")

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/habit", gin.H{
			"nome":         "Beber água",
			"categoria":    "Saúde",
			"icone":        "droplet",
			"fuso_horario": "America/Sao_Paulo",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "DUPLICATE_NAME", env.Error.Code)
	})
}

func TestHabitAPI_ActiveLimit(t *testing.T) {
	router := setupAPI(t, 2)

	createHabit(t, router, "Primeiro")
	createHabit(t, router, "Segundo")

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/habit", gin.H{
		"nome":         "Terceiro",
		"categoria":    "Saúde",
		"icone":        "heart",
		"fuso_horario": "America/Sao_Paulo",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

	var env envelope
	testutils.ParseResponse(t, resp, &env)
	require.NotNil(t, env.Error)
	assert.Equal(t, "LIMIT_REACHED", env.Error.Code)

	// Arquivar um hábito libera vaga no limite
	first := testutils.MakeRequest(t, router, http.MethodGet, "/habit", nil, nil)
	testutils.ParseResponse(t, first, &env)
	var summaries []model.HabitSummary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))

	resp = testutils.MakeRequest(t, router, http.MethodPost,
		"/habit/"+summaries[0].ID+"/archive",
		gin.H{"motivo_arquivamento": "abrindo espaço"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	createHabit(t, router, "Terceiro")
}

func TestHabitAPI_GetUpdateDelete(t *testing.T) {
	router := setupAPI(t, 20)
	created := createHabit(t, router, "Meditar")

	t.Run("malformed id returns 400", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/habit/123", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet,
			"/habit/a81bc81b-dead-4e5d-abff-90865d1e13b1", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("update merges fields and preserves timezone", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPut, "/habit/"+created.ID, gin.H{
			"nome":      "Meditar à noite",
			"descricao": "antes de dormir",
			"categoria": "Saúde",
			"icone":     "moon",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		var updated model.Habit
		require.NoError(t, json.Unmarshal(env.Data, &updated))

		assert.Equal(t, "Meditar à noite", updated.Nome)
		require.NotNil(t, updated.Descricao)
		assert.Equal(t, "antes de dormir", *updated.Descricao)
		assert.Equal(t, model.CategoriaSaude, updated.Categoria)
		assert.Equal(t, created.FusoHorario, updated.FusoHorario)
		assert.Equal(t, created.Status, updated.Status)
	})

	t.Run("update rename collision returns DUPLICATE_NAME", func(t *testing.T) {
		other := createHabit(t, router, "Correr")

		resp := testutils.MakeRequest(t, router, http.MethodPut, "/habit/"+other.ID, gin.H{
			"nome":      "Meditar à noite",
			"categoria": "Fitness",
			"icone":     "run",
		}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "DUPLICATE_NAME", env.Error.Code)
	})

	t.Run("delete then get returns 404", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/habit/"+created.ID, nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var env envelope
		testutils.ParseResponse(t, resp, &env)
		assert.True(t, env.Success)
		assert.NotEmpty(t, env.Message)

		resp = testutils.MakeRequest(t, router, http.MethodGet, "/habit/"+created.ID, nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})
}

func TestHabitAPI_TransitionGuards(t *testing.T) {
	router := setupAPI(t, 20)
	created := createHabit(t, router, "Meditar")

	// Restaurar um hábito já ativo falha
	resp := testutils.MakeRequest(t, router, http.MethodPost,
		"/habit/"+created.ID+"/restore", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

	var env envelope
	testutils.ParseResponse(t, resp, &env)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_ACTIVE", env.Error.Code)

	// Arquivar duas vezes falha na segunda
	body := gin.H{"motivo_arquivamento": "pausa"}
	resp = testutils.MakeRequest(t, router, http.MethodPost,
		"/habit/"+created.ID+"/archive", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodPost,
		"/habit/"+created.ID+"/archive", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	testutils.ParseResponse(t, resp, &env)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_ARCHIVED", env.Error.Code)

	// Arquivar sem motivo falha com erro de validação
	second := createHabit(t, router, "Correr")
	resp = testutils.MakeRequest(t, router, http.MethodPost,
		"/habit/"+second.ID+"/archive", gin.H{}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	testutils.ParseResponse(t, resp, &env)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
