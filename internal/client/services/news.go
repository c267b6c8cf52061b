package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

type NewsService interface {
	List(ctx context.Context) ([]models.News, error)
	Upload(ctx context.Context, u models.NewsUpload) (models.News, error)
	Delete(ctx context.Context, id models.ID) error
}

type newsService struct {
	client client.Client
}

func NewNewsService(client client.Client) NewsService {
	return &newsService{client: client}
}

func (s *newsService) List(ctx context.Context) ([]models.News, error) {
	news, err := s.client.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return news, nil
}

// Upload validates u before anything is sent. The PDF is optional.
func (s *newsService) Upload(ctx context.Context, u models.NewsUpload) (models.News, error) {
	if err := u.Validate(); err != nil {
		return models.News{}, err
	}

	n, err := s.client.UploadNews(ctx, u)
	if err != nil {
		return models.News{}, fmt.Errorf("upload news: %w", err)
	}
	return n, nil
}

func (s *newsService) Delete(ctx context.Context, id models.ID) error {
	if id == "" {
		return fmt.Errorf("delete news: empty id")
	}
	if err := s.client.DeleteNews(ctx, id); err != nil {
		return fmt.Errorf("delete news %s: %w", id, err)
	}
	return nil
}
