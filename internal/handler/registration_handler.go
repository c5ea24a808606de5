package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/response"
)

// How often the live counter pushes a fresh count to connected pages.
const liveCountInterval = 10 * time.Second

type RegistrationHandler struct {
	registrationService service.RegistrationService
	upgrader            websocket.Upgrader
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	var input service.CreateRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.registrationService.Create(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	registrations, err := h.registrationService.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, registrations)
}

func (h *RegistrationHandler) CountRegistrations(c *gin.Context) {
	count, err := h.registrationService.Count(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// LiveCount streams the attendee count over a websocket so the landing
// page counter updates without polling.
func (h *RegistrationHandler) LiveCount(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if err := h.writeCount(c, conn); err != nil {
		return
	}

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(liveCountInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.writeCount(c, conn); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *RegistrationHandler) writeCount(c *gin.Context, conn *websocket.Conn) error {
	count, err := h.registrationService.Count(c.Request.Context())
	if err != nil {
		log.Printf("failed to count registrations: %v", err)
		return err
	}

	return conn.WriteJSON(gin.H{"count": count})
}
