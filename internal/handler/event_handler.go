package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/response"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) RegisterForEvent(c *gin.Context) {
	var input service.EventRegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	registration, err := h.eventService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "registration": registration})
}
