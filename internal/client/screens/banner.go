package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/client/carousel"
	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/services"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
	"github.com/jonboulle/clockwork"
)

type Mode string

const (
	ModeUpload    Mode = "upload"
	ModeView      Mode = "view"
	ModeSlideshow Mode = "slideshow"
)

const (
	NoticeBannerUploaded     = "Banner uploaded successfully!"
	NoticeBannerUploadFailed = "Upload failed!"
	NoticeNoBanners          = "No banners found"
	NoticeBannersLoadFailed  = "Failed to load banners"
	NoticeBannerDeleted      = "Banner deleted!"
	NoticeBannerDeleteFailed = "Failed to delete banner!"
)

var ErrUnknownMode = errors.New("unknown mode")

func ParseMode(s string, allowed ...Mode) (Mode, error) {
	for _, m := range allowed {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// BannerScreen is the banner management screen. The zero tab state is
// homepage banners in upload mode.
type BannerScreen struct {
	svc          services.BannerService
	notify       Notifier
	log          logging.Logger
	clock        clockwork.Clock
	carouselOpts []carousel.Option

	list   Loader[[]models.Banner]
	slides Loader[[]models.Banner]

	mu         sync.Mutex
	bannerType models.BannerType
	mode       Mode
	form       models.BannerUpload
	banners    []models.Banner
	show       *carousel.Group
}

type BannerOption func(*BannerScreen)

// WithClock drives the slideshow from c instead of the wall clock.
func WithClock(c clockwork.Clock) BannerOption {
	return func(s *BannerScreen) { s.clock = c }
}

func WithCarouselOptions(opts ...carousel.Option) BannerOption {
	return func(s *BannerScreen) { s.carouselOpts = append(s.carouselOpts, opts...) }
}

func WithBannerLogger(l logging.Logger) BannerOption {
	return func(s *BannerScreen) { s.log = l }
}

func NewBannerScreen(svc services.BannerService, notify Notifier, opts ...BannerOption) *BannerScreen {
	s := &BannerScreen{
		svc:        svc,
		notify:     notify,
		log:        logging.Nop(),
		clock:      clockwork.NewRealClock(),
		bannerType: models.BannerTypeHomepage,
		mode:       ModeUpload,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *BannerScreen) Type() models.BannerType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bannerType
}

func (s *BannerScreen) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Banners returns a copy of the cached list.
func (s *BannerScreen) Banners() []models.Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Banner(nil), s.banners...)
}

// SetType switches the banner type tab. In view and slideshow modes the
// data for the new type is fetched.
func (s *BannerScreen) SetType(ctx context.Context, t models.BannerType) error {
	if _, err := models.ParseBannerType(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.bannerType != t
	s.bannerType = t
	mode := s.mode
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.enter(ctx, mode)
}

// SetMode switches the mode tab. Staged upload input is discarded.
func (s *BannerScreen) SetMode(ctx context.Context, m Mode) error {
	if _, err := ParseMode(string(m), ModeUpload, ModeView, ModeSlideshow); err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.mode
	s.mode = m
	s.form = models.BannerUpload{}
	s.mu.Unlock()

	if prev == ModeSlideshow && m != ModeSlideshow {
		s.stopSlideshow()
	}
	return s.enter(ctx, m)
}

func (s *BannerScreen) enter(ctx context.Context, m Mode) error {
	switch m {
	case ModeView:
		return s.Refresh(ctx)
	case ModeSlideshow:
		return s.loadSlideshow(ctx)
	default:
		return nil
	}
}

func (s *BannerScreen) StageDesktop(f *models.File) {
	s.mu.Lock()
	s.form.Desktop = f
	s.mu.Unlock()
}

func (s *BannerScreen) StageMobile(f *models.File) {
	s.mu.Lock()
	s.form.Mobile = f
	s.mu.Unlock()
}

// Form returns the staged upload form.
func (s *BannerScreen) Form() models.BannerUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.form
	f.Type = s.bannerType
	return f
}

// Upload submits the staged form. On success the form is cleared and the
// list re-fetched.
func (s *BannerScreen) Upload(ctx context.Context) (models.Banner, error) {
	form := s.Form()

	b, err := s.svc.Upload(ctx, form)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			s.notify.Error(ctx, msg)
			return b, err
		}
		s.log.Warn(ctx, "banner upload failed", "type", form.Type, "error", err)
		s.notify.Error(ctx, NoticeBannerUploadFailed)
		return b, err
	}

	s.mu.Lock()
	s.form = models.BannerUpload{}
	s.mu.Unlock()
	s.notify.Success(ctx, NoticeBannerUploaded)

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "refresh after upload failed", "error", err)
	}
	return b, nil
}

// Refresh fetches the list for the current type. A result superseded by a
// newer fetch is dropped and nil is returned.
func (s *BannerScreen) Refresh(ctx context.Context) error {
	t := s.Type()
	banners, err := s.list.Load(ctx, func(ctx context.Context) ([]models.Banner, error) {
		return s.svc.List(ctx, t)
	})
	if errors.Is(err, ErrStale) {
		s.log.Debug(ctx, "discarded stale banner list", "type", t)
		return nil
	}
	if client.IsAuthFailure(err) {
		s.dropList()
		return err
	}
	if err != nil {
		s.notify.Error(ctx, NoticeBannersLoadFailed)
		return err
	}

	s.mu.Lock()
	s.banners = banners
	s.mu.Unlock()

	if len(banners) == 0 {
		s.notify.Info(ctx, NoticeNoBanners)
	}
	return nil
}

// Delete removes id on the server, then from the cached list.
func (s *BannerScreen) Delete(ctx context.Context, id models.ID) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "banner delete failed", "id", id, "error", err)
		if !client.IsAuthFailure(err) {
			s.notify.Error(ctx, NoticeBannerDeleteFailed)
		}
		return err
	}

	s.mu.Lock()
	kept := s.banners[:0:0]
	for _, b := range s.banners {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.banners = kept
	s.mu.Unlock()

	s.notify.Success(ctx, NoticeBannerDeleted)
	return nil
}

func (s *BannerScreen) loadSlideshow(ctx context.Context) error {
	t := s.Type()
	banners, err := s.slides.Load(ctx, func(ctx context.Context) ([]models.Banner, error) {
		return s.svc.List(ctx, t)
	})
	if errors.Is(err, ErrStale) {
		return nil
	}
	if client.IsAuthFailure(err) {
		return err
	}
	if err != nil {
		s.notify.Error(ctx, NoticeBannersLoadFailed)
		return err
	}

	tracks := []carousel.Track{
		{Label: "desktop", Items: models.DesktopURLs(banners)},
		{Label: "mobile", Items: models.MobileURLs(banners)},
	}

	s.mu.Lock()
	show := s.show
	if show == nil {
		show = carousel.NewGroup(s.clock, tracks, s.carouselOpts...)
		s.show = show
		s.mu.Unlock()
		show.Start()
		return nil
	}
	s.mu.Unlock()

	show.SetTracks(tracks)
	return nil
}

// Slideshow returns the running slideshow, or nil outside slideshow mode.
func (s *BannerScreen) Slideshow() *carousel.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.show
}

func (s *BannerScreen) stopSlideshow() {
	s.slides.Cancel()

	s.mu.Lock()
	show := s.show
	s.show = nil
	s.mu.Unlock()

	if show != nil {
		show.Stop()
	}
}

// Close stops background work owned by the screen.
func (s *BannerScreen) Close() {
	s.list.Cancel()
	s.stopSlideshow()
}

// Reset stops background work and forgets everything fetched or staged,
// returning to homepage banners in upload mode.
func (s *BannerScreen) Reset() {
	s.Close()

	s.mu.Lock()
	s.bannerType = models.BannerTypeHomepage
	s.mode = ModeUpload
	s.form = models.BannerUpload{}
	s.banners = nil
	s.mu.Unlock()
}

func (s *BannerScreen) dropList() {
	s.mu.Lock()
	s.banners = nil
	s.mu.Unlock()
}
