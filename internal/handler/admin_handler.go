package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListAccountRegistrations(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
