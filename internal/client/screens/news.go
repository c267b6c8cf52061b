package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/pdfview"
	"github.com/dmitrijs2005/cmsadmin/internal/client/services"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

const (
	NoticeNewsUploaded        = "News uploaded successfully!"
	NoticeNewsUploadFailed    = "Upload failed!"
	NoticeNewsUploadForbidden = "Unauthorized! Please log in again."
	NoticeNewsAccessDenied    = "Access denied — please log in again."
	NoticeNewsLoadFailed      = "Failed to load news"
	NoticeNoNews              = "No news found"
	NoticeNewsDeleted         = "News deleted!"
	NoticeNewsDeleteFailed    = "Failed to delete news!"
	NoticeNewsNotFound        = "News item not found"
	NoticeNoAttachment        = "This news item has no PDF"
	NoticePDFFailed           = "Failed to load PDF"
	NoticePDFDownloaded       = "PDF downloaded successfully!"
	NoticePDFDownloadFailed   = "Failed to download PDF"
)

// NewsScreen is the news management screen, starting in upload mode.
type NewsScreen struct {
	svc    services.NewsService
	notify Notifier
	log    logging.Logger
	fetch  pdfview.Fetcher

	list Loader[[]models.News]

	mu     sync.Mutex
	mode   Mode
	form   models.NewsUpload
	news   []models.News
	viewer *pdfview.Viewer
}

func NewNewsScreen(svc services.NewsService, notify Notifier, fetch pdfview.Fetcher, log logging.Logger) *NewsScreen {
	if log == nil {
		log = logging.Nop()
	}
	return &NewsScreen{svc: svc, notify: notify, fetch: fetch, log: log, mode: ModeUpload}
}

func (s *NewsScreen) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *NewsScreen) News() []models.News {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.News(nil), s.news...)
}

// SetMode switches between upload and view. Staged input is discarded and
// any open PDF is closed.
func (s *NewsScreen) SetMode(ctx context.Context, m Mode) error {
	if _, err := ParseMode(string(m), ModeUpload, ModeView); err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = m
	s.form = models.NewsUpload{}
	s.viewer = nil
	s.mu.Unlock()

	if m == ModeView {
		return s.Refresh(ctx)
	}
	s.list.Cancel()
	return nil
}

// Stage replaces the upload form.
func (s *NewsScreen) Stage(form models.NewsUpload) {
	s.mu.Lock()
	s.form = form
	s.mu.Unlock()
}

func (s *NewsScreen) Form() models.NewsUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Upload submits the staged form and clears it on success. The list is
// not re-fetched.
func (s *NewsScreen) Upload(ctx context.Context) (models.News, error) {
	n, err := s.svc.Upload(ctx, s.Form())
	if err != nil {
		switch msg, ok := validationMessage(err); {
		case ok:
			s.notify.Error(ctx, msg)
		case errors.Is(err, client.ErrForbidden):
			s.notify.Error(ctx, NoticeNewsUploadForbidden)
		default:
			s.log.Warn(ctx, "news upload failed", "error", err)
			s.notify.Error(ctx, NoticeNewsUploadFailed)
		}
		return n, err
	}

	s.mu.Lock()
	s.form = models.NewsUpload{}
	s.mu.Unlock()
	s.notify.Success(ctx, NoticeNewsUploaded)
	return n, nil
}

func (s *NewsScreen) Refresh(ctx context.Context) error {
	news, err := s.list.Load(ctx, s.svc.List)
	if errors.Is(err, ErrStale) {
		s.log.Debug(ctx, "discarded stale news list")
		return nil
	}
	if client.IsAuthFailure(err) {
		s.mu.Lock()
		s.news = nil
		s.mu.Unlock()
		return err
	}
	if err != nil {
		if errors.Is(err, client.ErrForbidden) {
			s.notify.Error(ctx, NoticeNewsAccessDenied)
		} else {
			s.notify.Error(ctx, NoticeNewsLoadFailed)
		}
		return err
	}

	s.mu.Lock()
	s.news = news
	s.mu.Unlock()

	if len(news) == 0 {
		s.notify.Info(ctx, NoticeNoNews)
	}
	return nil
}

// Delete removes id on the server, then from the cached list.
func (s *NewsScreen) Delete(ctx context.Context, id models.ID) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "news delete failed", "id", id, "error", err)
		if !client.IsAuthFailure(err) {
			s.notify.Error(ctx, NoticeNewsDeleteFailed)
		}
		return err
	}

	s.mu.Lock()
	kept := s.news[:0:0]
	for _, n := range s.news {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.news = kept
	s.mu.Unlock()

	s.notify.Success(ctx, NoticeNewsDeleted)
	return nil
}

func (s *NewsScreen) find(ctx context.Context, id models.ID) (models.News, bool) {
	s.mu.Lock()
	for _, n := range s.news {
		if n.ID == id {
			s.mu.Unlock()
			return n, true
		}
	}
	s.mu.Unlock()

	s.notify.Error(ctx, NoticeNewsNotFound)
	return models.News{}, false
}

// OpenPDF loads the attachment of a listed news item into the viewer.
func (s *NewsScreen) OpenPDF(ctx context.Context, id models.ID) (*pdfview.Viewer, error) {
	n, ok := s.find(ctx, id)
	if !ok {
		return nil, client.ErrNotFound
	}

	v, err := pdfview.Open(ctx, s.fetch, n)
	if err != nil {
		if errors.Is(err, pdfview.ErrNoAttachment) {
			s.notify.Info(ctx, NoticeNoAttachment)
		} else {
			s.log.Warn(ctx, "pdf open failed", "id", id, "error", err)
			s.notify.Error(ctx, NoticePDFFailed)
		}
		return nil, err
	}

	s.mu.Lock()
	s.viewer = v
	s.mu.Unlock()
	return v, nil
}

// Viewer returns the open PDF, if any.
func (s *NewsScreen) Viewer() *pdfview.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer
}

func (s *NewsScreen) ClosePDF() {
	s.mu.Lock()
	s.viewer = nil
	s.mu.Unlock()
}

// DownloadPDF fetches the attachment of id and saves it into dir.
func (s *NewsScreen) DownloadPDF(ctx context.Context, id models.ID, dir string) (string, error) {
	n, ok := s.find(ctx, id)
	if !ok {
		return "", client.ErrNotFound
	}

	v, err := pdfview.Open(ctx, s.fetch, n)
	if err != nil {
		if errors.Is(err, pdfview.ErrNoAttachment) {
			s.notify.Info(ctx, NoticeNoAttachment)
		} else {
			s.notify.Error(ctx, NoticePDFDownloadFailed)
		}
		return "", err
	}

	path, err := v.Save(dir)
	if err != nil {
		s.log.Error(ctx, "pdf save failed", "id", id, "error", err)
		s.notify.Error(ctx, NoticePDFDownloadFailed)
		return "", err
	}
	s.notify.Success(ctx, NoticePDFDownloaded)
	return path, nil
}

// Close abandons any in-flight fetch.
func (s *NewsScreen) Close() {
	s.list.Cancel()
}

// Reset abandons any in-flight fetch and forgets the cached list, the
// staged form and the open PDF, returning to upload mode.
func (s *NewsScreen) Reset() {
	s.Close()

	s.mu.Lock()
	s.mode = ModeUpload
	s.form = models.NewsUpload{}
	s.news = nil
	s.viewer = nil
	s.mu.Unlock()
}
