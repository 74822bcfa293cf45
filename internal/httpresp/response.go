package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Received é a resposta padrão para o provedor de webhooks: evento aceito
// (processado ou ignorado).
func Received(c *gin.Context) {
	c.JSON(200, gin.H{"received": true})
}
