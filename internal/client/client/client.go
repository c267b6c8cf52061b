package client

import (
	"context"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

// Client is the CMS API contract used by the services.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Ping(ctx context.Context) error

	ListBanners(ctx context.Context, t models.BannerType) ([]models.Banner, error)
	UploadBanner(ctx context.Context, u models.BannerUpload) (models.Banner, error)
	DeleteBanner(ctx context.Context, id models.ID) error

	ListNews(ctx context.Context) ([]models.News, error)
	UploadNews(ctx context.Context, u models.NewsUpload) (models.News, error)
	DeleteNews(ctx context.Context, id models.ID) error
}

// TokenStore is the slice of the session the gateway needs.
type TokenStore interface {
	Peek(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}
