// Package pdfview opens news PDF attachments for reading in the terminal
// and saving to disk. Rasterising pages is left to an external viewer; this
// package tracks the document, its page count and the zoom level.
package pdfview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/filex"
	"github.com/dmitrijs2005/cmsadmin/internal/netx"
	"github.com/ledongthuc/pdf"
)

const (
	InitialScale = 1.1
	MinScale     = 0.6
	MaxScale     = 2.0
	ScaleStep    = 0.2
)

var (
	ErrNoAttachment = errors.New("news item has no PDF")
	ErrNotPDF       = errors.New("attachment is not a PDF")
)

// Fetcher returns the bytes behind url.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// HTTPFetcher downloads attachments directly from storage, outside the API
// gateway.
func HTTPFetcher(c *http.Client) Fetcher {
	return func(ctx context.Context, url string) ([]byte, error) {
		return netx.Download(ctx, c, url)
	}
}

type Viewer struct {
	URL   string
	Title string

	scale float64
	pages int
	data  []byte
}

// Open fetches the attachment of n and prepares it for viewing.
func Open(ctx context.Context, fetch Fetcher, n models.News) (*Viewer, error) {
	if !n.HasPDF() {
		return nil, ErrNoAttachment
	}

	url := n.AttachmentURL()
	data, err := fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch pdf: %w", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	pages, err := CountPages(data)
	if err != nil {
		return nil, err
	}

	return &Viewer{
		URL:   url,
		Title: n.Title,
		scale: InitialScale,
		pages: pages,
		data:  data,
	}, nil
}

func (v *Viewer) Scale() float64 { return v.scale }
func (v *Viewer) Pages() int { return v.pages }
func (v *Viewer) Size() int { return len(v.data) }

func (v *Viewer) ZoomIn() float64 {
	v.scale = clampScale(v.scale + ScaleStep)
	return v.scale
}

func (v *Viewer) ZoomOut() float64 {
	v.scale = clampScale(v.scale - ScaleStep)
	return v.scale
}

// Summary is the one-line status shown under the document title.
func (v *Viewer) Summary() string {
	pages := "pages"
	if v.pages == 1 {
		pages = "page"
	}
	return fmt.Sprintf("%s: %d %s, zoom %d%%", v.Title, v.pages, pages, int(math.Round(v.scale*100)))
}

// Save writes the document into dir under DownloadName(Title).
func (v *Viewer) Save(dir string) (string, error) {
	return filex.SaveTo(dir, DownloadName(v.Title), v.data)
}

func clampScale(s float64) float64 {
	s = math.Round(s*10) / 10
	return math.Max(MinScale, math.Min(MaxScale, s))
}

var whitespace = regexp.MustCompile(`\s+`)

// DownloadName turns a news title into a file name: whitespace runs become
// underscores and ".pdf" is appended.
func DownloadName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "document.pdf"
	}
	return whitespace.ReplaceAllString(title, "_") + ".pdf"
}

// CountPages reads the page tree of a PDF. Both classic cross-reference
// tables and compressed object streams are understood.
func CountPages(data []byte) (n int, err error) {
	// the parser panics on some malformed trailers
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	return r.NumPage(), nil
}
