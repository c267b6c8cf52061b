package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

type BannerService interface {
	List(ctx context.Context, t models.BannerType) ([]models.Banner, error)
	Upload(ctx context.Context, u models.BannerUpload) (models.Banner, error)
	Delete(ctx context.Context, id models.ID) error
}

type bannerService struct {
	client client.Client
}

func NewBannerService(client client.Client) BannerService {
	return &bannerService{client: client}
}

func (s *bannerService) List(ctx context.Context, t models.BannerType) ([]models.Banner, error) {
	if _, err := models.ParseBannerType(string(t)); err != nil {
		return nil, err
	}

	banners, err := s.client.ListBanners(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Upload validates u before anything is sent.
func (s *bannerService) Upload(ctx context.Context, u models.BannerUpload) (models.Banner, error) {
	if err := u.Validate(); err != nil {
		return models.Banner{}, err
	}

	b, err := s.client.UploadBanner(ctx, u)
	if err != nil {
		return models.Banner{}, fmt.Errorf("upload banner: %w", err)
	}
	return b, nil
}

func (s *bannerService) Delete(ctx context.Context, id models.ID) error {
	if id == "" {
		return fmt.Errorf("delete banner: empty id")
	}
	if err := s.client.DeleteBanner(ctx, id); err != nil {
		return fmt.Errorf("delete banner %s: %w", id, err)
	}
	return nil
}
