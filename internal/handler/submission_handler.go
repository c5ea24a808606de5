package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/response"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
	searchService     service.SearchService
}

func NewSubmissionHandler(submissionService service.SubmissionService, searchService service.SearchService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		searchService:     searchService,
	}
}

func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var input service.CreateSubmissionInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	submission, err := h.submissionService.Create(c.Request.Context(), input, &service.UploadFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "imageUrl": submission.ImageURL})
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.submissionService.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	submission, err := h.submissionService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) SearchSubmissions(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	res, err := h.searchService.Search(c.Query("q"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hits": res.Hits})
}
