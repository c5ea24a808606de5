package service

import (
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/uvichacks/showcase/internal/model"
)

const submissionIndex = "submissions"

type SearchService interface {
	IndexSubmission(submission *model.Submission) error
	Search(query string) (*meilisearch.SearchResponse, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(submissionIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update submissions sortable attributes: %v", err)
	}

	searchableAttrs := []string{"projectName", "userName"}
	if _, err := s.client.Index(submissionIndex).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update submissions searchable attributes: %v", err)
	}
}

type submissionDoc struct {
	ID          uint   `json:"id"`
	ProjectName string `json:"projectName"`
	UserName    string `json:"userName"`
	ProjectURL  string `json:"projectUrl"`
	ImageURL    string `json:"imageUrl"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexSubmission(submission *model.Submission) error {
	doc := submissionDoc{
		ID:          submission.ID,
		ProjectName: submission.ProjectName,
		UserName:    submission.UserName,
		ProjectURL:  submission.ProjectURL,
		ImageURL:    submission.ImageURL,
		CreatedAt:   submission.CreatedAt.Unix(),
	}

	task, err := s.client.Index(submissionIndex).AddDocuments([]submissionDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed submission %d, task id: %d", submission.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) Search(query string) (*meilisearch.SearchResponse, error) {
	return s.client.Index(submissionIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 50,
	})
}

func strPtr(s string) *string {
	return &s
}
