// Package preview checks banner images before upload and renders small
// local thumbnails of them.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/filex"
)

const (
	DefaultWidth   = 320
	DefaultDir     = "preview"
	thumbQuality   = 80
	thumbExtension = "_thumb.jpg"
)

var ErrNotImage = errors.New("not a supported image")

type Info struct {
	Name      string
	Format    string
	Width     int
	Height    int
	Thumbnail string
}

func (i Info) String() string {
	s := fmt.Sprintf("%s: %dx%d %s", i.Name, i.Width, i.Height, i.Format)
	if i.Thumbnail != "" {
		s += ", thumbnail " + i.Thumbnail
	}
	return s
}

// Inspect decodes f and reports its size after EXIF orientation.
func Inspect(f *models.File) (Info, error) {
	_, info, err := decode(f)
	return info, err
}

// Thumbnail writes a JPEG of f scaled to width (height follows the aspect
// ratio) into dir. Images narrower than width are not upscaled.
func Thumbnail(f *models.File, dir string, width int) (Info, error) {
	img, info, err := decode(f)
	if err != nil {
		return info, err
	}
	if width <= 0 {
		width = DefaultWidth
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return info, fmt.Errorf("encode thumbnail: %w", err)
	}

	path, err := filex.SaveTo(dir, thumbName(f.Name), buf.Bytes())
	if err != nil {
		return info, err
	}
	info.Thumbnail = path
	return info, nil
}

func decode(f *models.File) (image.Image, Info, error) {
	if f.Empty() {
		return nil, Info{}, ErrNotImage
	}
	info := Info{Name: f.Name}

	_, format, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return nil, info, fmt.Errorf("%s: %w", f.Name, ErrNotImage)
	}

	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, info, fmt.Errorf("%s: %w", f.Name, ErrNotImage)
	}

	b := img.Bounds()
	info.Format = format
	info.Width = b.Dx()
	info.Height = b.Dy()
	return img, info, nil
}

func thumbName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + thumbExtension
}
