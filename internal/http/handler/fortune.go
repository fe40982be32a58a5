package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/fortune/internal/http/dto"
	"basegraph.app/fortune/internal/service"
)

type FortuneHandler struct {
	fortuneService service.FortuneService
}

func NewFortuneHandler(fortuneService service.FortuneService) *FortuneHandler {
	return &FortuneHandler{fortuneService: fortuneService}
}

// Create generates a fortune. The request body is accepted but never read,
// so the only outcomes are 200 with a fortune or 500 with a static message.
// The service has already logged the cause of a failure.
func (h *FortuneHandler) Create(c *gin.Context) {
	fortune, err := h.fortuneService.Generate(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, dto.FortuneErrorMessage)
		return
	}

	c.JSON(http.StatusOK, dto.ToFortuneResponse(fortune))
}
