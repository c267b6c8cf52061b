package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/router"
	"github.com/dmitrijs2005/cmsadmin/internal/client/screens"
	"github.com/dustin/go-humanize"
)

func (a *App) enterNewsView(ctx context.Context) error {
	if a.news.Mode() == screens.ModeView {
		return a.news.Refresh(ctx)
	}
	return a.news.SetMode(ctx, screens.ModeView)
}

func (a *App) printNews() {
	for _, n := range a.news.News() {
		pdf := ""
		if n.HasPDF() {
			pdf = " [PDF]"
		}
		a.println(fmt.Sprintf("%-6s %s  %s (by %s)%s", n.ID, n.Date, n.Title, n.Author, pdf))
	}
}

func (a *App) uploadNews(ctx context.Context) error {
	if a.news.Mode() != screens.ModeUpload {
		if err := a.news.SetMode(ctx, screens.ModeUpload); err != nil {
			return err
		}
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	author, err := getSimpleText(a.reader, "Author", a.out)
	if err != nil {
		return err
	}
	pdfPath, err := getSimpleText(a.reader, "PDF path (optional)", a.out)
	if err != nil {
		return err
	}

	form := models.NewsUpload{Title: title, Description: description, Author: author}
	if pdfPath != "" {
		f, err := models.ReadFile(pdfPath)
		if err != nil {
			a.notify.Error(ctx, err.Error())
			return err
		}
		form.PDF = f
	}
	a.news.Stage(form)

	n, err := a.news.Upload(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Created news %s", n.ID))
	return nil
}

// newsReady makes sure the news list is loaded so ids can be resolved.
func (a *App) newsReady(ctx context.Context, cmd string) bool {
	if _, ok := a.requireScreen(cmd, router.PathNews); !ok {
		return false
	}
	if len(a.news.News()) == 0 {
		if err := a.enterNewsView(ctx); err != nil {
			return false
		}
	}
	return true
}

// OpenPDF loads the attachment of a news item into the viewer.
func (a *App) OpenPDF(ctx context.Context, id string) error {
	if !a.newsReady(ctx, "pdf") {
		return nil
	}
	v, err := a.news.OpenPDF(ctx, models.ID(id))
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("%s (%s)", v.Summary(), humanize.Bytes(uint64(v.Size()))))
	a.println(v.URL)
	return nil
}

// Zoom changes the scale of the open PDF.
func (a *App) Zoom(ctx context.Context, direction string) error {
	v := a.news.Viewer()
	if v == nil {
		a.println("No PDF open; use 'pdf <id>' first")
		return nil
	}

	switch direction {
	case "in", "+":
		v.ZoomIn()
	case "out", "-":
		v.ZoomOut()
	default:
		a.println("Usage: zoom <in|out>")
		return fmt.Errorf("invalid zoom direction %q", direction)
	}
	a.println(v.Summary())
	return nil
}

// Download saves the attachment of a news item into the download directory.
func (a *App) Download(ctx context.Context, id string) error {
	if !a.newsReady(ctx, "download") {
		return nil
	}
	path, err := a.news.DownloadPDF(ctx, models.ID(id), a.config.DownloadDir)
	if err != nil {
		return err
	}
	a.println("Saved to", path)
	return nil
}
