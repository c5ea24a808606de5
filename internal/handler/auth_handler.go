package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterAccount(c *gin.Context) {
	var input service.RegisterAccountInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	var resume *service.UploadFile
	if fileHeader, err := c.FormFile("resume"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read resume"})
			return
		}
		defer file.Close()

		resume = &service.UploadFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		}
	}

	res, err := h.authService.RegisterAccount(c.Request.Context(), input, resume)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"userId":      res.UserID,
		"resume_path": res.ResumePath,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      res.Token,
		"user":       res.User,
		"resume_url": res.ResumeURL,
	})
}
