package http

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/habitus-app/habitus-api/pkg/errors"
)

// ErrorBody é o corpo de erro do envelope de resposta
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Response é o envelope comum de todas as respostas da API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// respondData envia uma resposta de sucesso com payload
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// respondMessage envia uma resposta de sucesso com mensagem de confirmação
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

// respondError traduz qualquer erro para o envelope de falha
func respondError(c *gin.Context, err error) {
	apiErr := apierrors.FromError(err)
	c.JSON(apiErr.Status, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}
