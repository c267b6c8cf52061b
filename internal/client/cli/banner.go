package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/carousel"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/preview"
	"github.com/dmitrijs2005/cmsadmin/internal/client/router"
	"github.com/dmitrijs2005/cmsadmin/internal/client/screens"
)

// waitFn blocks for d or until ctx is done. Tests swap it to drive a fake clock.
var waitFn = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// SetType switches the banner type tab.
func (a *App) SetType(ctx context.Context, arg string) error {
	if _, ok := a.requireScreen("type", router.PathBanner); !ok {
		return nil
	}

	t, err := models.ParseBannerType(arg)
	if err != nil {
		a.notify.Error(ctx, err.Error())
		return err
	}
	if err := a.banners.SetType(ctx, t); err != nil {
		return err
	}
	a.println(t.Title())
	a.showBannerMode()
	return nil
}

// SetTab switches the mode tab of the current screen.
func (a *App) SetTab(ctx context.Context, arg string) error {
	cur, ok := a.requireScreen("tab", router.PathBanner, router.PathNews)
	if !ok {
		return nil
	}

	if cur == router.PathNews {
		m, err := screens.ParseMode(arg, screens.ModeUpload, screens.ModeView)
		if err != nil {
			a.println("Usage: tab <upload|view>")
			return err
		}
		if err := a.news.SetMode(ctx, m); err != nil {
			return err
		}
		if m == screens.ModeView {
			a.printNews()
		}
		return nil
	}

	m, err := screens.ParseMode(arg, screens.ModeUpload, screens.ModeView, screens.ModeSlideshow)
	if err != nil {
		a.println("Usage: tab <upload|view|slideshow>")
		return err
	}
	if err := a.banners.SetMode(ctx, m); err != nil {
		return err
	}
	a.showBannerMode()
	return nil
}

func (a *App) showBannerMode() {
	switch a.banners.Mode() {
	case screens.ModeView:
		a.printBanners()
	case screens.ModeSlideshow:
		if show := a.banners.Slideshow(); show != nil {
			for _, line := range show.Render() {
				a.println(line)
			}
		}
	}
}

func (a *App) printBanners() {
	for _, b := range a.banners.Banners() {
		a.println(fmt.Sprintf("%-6s desktop=%s mobile=%s", b.ID, b.DesktopImageURL, b.MobileImageURL))
	}
}

// Upload prompts for the current screen's upload form and submits it.
func (a *App) Upload(ctx context.Context) error {
	cur, ok := a.requireScreen("upload", router.PathBanner, router.PathNews)
	if !ok {
		return nil
	}
	if cur == router.PathNews {
		return a.uploadNews(ctx)
	}

	if a.banners.Mode() != screens.ModeUpload {
		if err := a.banners.SetMode(ctx, screens.ModeUpload); err != nil {
			return err
		}
	}

	desktop, err := a.promptImage("Desktop image path")
	if err != nil {
		return err
	}
	mobile, err := a.promptImage("Mobile image path")
	if err != nil {
		return err
	}
	a.banners.StageDesktop(desktop)
	a.banners.StageMobile(mobile)

	b, err := a.banners.Upload(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Created banner %s (%s)", b.ID, a.banners.Type()))
	return nil
}

// promptImage reads a path and checks the file decodes as an image. An
// empty answer stages nothing.
func (a *App) promptImage(prompt string) (*models.File, error) {
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || path == "" {
		return nil, err
	}

	f, err := models.ReadFile(path)
	if err != nil {
		a.notify.Error(context.Background(), err.Error())
		return nil, err
	}
	info, err := preview.Inspect(f)
	if err != nil {
		a.notify.Error(context.Background(), err.Error())
		return nil, err
	}
	a.println(info.String())
	return f, nil
}

// List shows the current screen's list, switching it to view mode.
func (a *App) List(ctx context.Context) error {
	cur, ok := a.requireScreen("list", router.PathBanner, router.PathNews)
	if !ok {
		return nil
	}

	if cur == router.PathNews {
		if err := a.enterNewsView(ctx); err != nil {
			return err
		}
		if a.stillOn(cur) {
			a.printNews()
		}
		return nil
	}

	var err error
	if a.banners.Mode() == screens.ModeView {
		err = a.banners.Refresh(ctx)
	} else {
		err = a.banners.SetMode(ctx, screens.ModeView)
	}
	if err != nil {
		return err
	}
	if a.stillOn(cur) {
		a.printBanners()
	}
	return nil
}

// Delete removes an item of the current screen by id.
func (a *App) Delete(ctx context.Context, id string) error {
	cur, ok := a.requireScreen("delete", router.PathBanner, router.PathNews)
	if !ok {
		return nil
	}

	if cur == router.PathNews {
		if err := a.news.Delete(ctx, models.ID(id)); err != nil {
			return err
		}
		if a.stillOn(cur) {
			a.printNews()
		}
		return nil
	}

	if err := a.banners.Delete(ctx, models.ID(id)); err != nil {
		return err
	}
	if a.stillOn(cur) {
		a.printBanners()
	}
	return nil
}

// Play runs the banner slideshow in the terminal for the given number of
// seconds, three slide intervals by default.
func (a *App) Play(ctx context.Context, seconds string) error {
	if _, ok := a.requireScreen("play", router.PathBanner); !ok {
		return nil
	}

	d := 3 * a.config.SlideInterval
	if seconds != "" {
		n, err := strconv.Atoi(seconds)
		if err != nil || n <= 0 {
			a.println("Usage: play [seconds]")
			return fmt.Errorf("invalid duration %q", seconds)
		}
		d = time.Duration(n) * time.Second
	}

	if a.banners.Mode() != screens.ModeSlideshow || a.banners.Slideshow() == nil {
		if err := a.banners.SetMode(ctx, screens.ModeSlideshow); err != nil {
			return err
		}
	}
	show := a.banners.Slideshow()
	if show == nil {
		return nil
	}

	render := func() {
		for _, line := range show.Render() {
			a.println(line)
		}
	}
	render()
	if show.State().Len == 0 {
		return nil
	}

	show.OnChange(func(st carousel.State) {
		// the clone is shown again right after the snap
		if !st.AtBoundary() {
			render()
		}
	})
	defer show.OnChange(nil)

	waitFn(ctx, d)
	return nil
}

// Preview decodes a local image and writes a thumbnail next to downloads.
func (a *App) Preview(ctx context.Context, path string) error {
	f, err := models.ReadFile(path)
	if err != nil {
		a.notify.Error(ctx, err.Error())
		return err
	}

	dir := filepath.Join(a.config.DownloadDir, preview.DefaultDir)
	info, err := preview.Thumbnail(f, dir, preview.DefaultWidth)
	if err != nil {
		a.notify.Error(ctx, err.Error())
		return err
	}
	a.println(info.String())
	return nil
}
