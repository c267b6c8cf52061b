package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/cmsadmin/internal/client/carousel"
	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/config"
	"github.com/dmitrijs2005/cmsadmin/internal/client/pdfview"
	"github.com/dmitrijs2005/cmsadmin/internal/client/router"
	"github.com/dmitrijs2005/cmsadmin/internal/client/screens"
	"github.com/dmitrijs2005/cmsadmin/internal/client/services"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
	"github.com/jonboulle/clockwork"
)

const NoticeSessionExpired = "Session expired, please log in again"

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    services.AuthService
	sess    *session.Session
	router  *router.Router
	notify  screens.Notifier
	banners *screens.BannerScreen
	news    *screens.NewsScreen

	clock  clockwork.Clock
	reader *bufio.Reader
	out    io.Writer
}

type Option func(*App)

func WithInput(r io.Reader) Option {
	return func(a *App) { a.reader = bufio.NewReader(r) }
}

func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithClock drives slideshows from c.
func WithClock(c clockwork.Clock) Option {
	return func(a *App) { a.clock = c }
}

// NewApp opens the local store and wires every component.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	a := &App{
		config: c,
		log:    log,
		clock:  clockwork.NewRealClock(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}
	a.db = db

	sess := session.New(db)
	a.sess = sess
	a.notify = screens.NewTerminalNotifier(a.out, log)

	api, err := client.NewHTTPClient(c.ServerBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithUnauthorizedHandler(a.onUnauthorized),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.auth = services.NewAuthService(api, sess)

	guardOpts := []session.GuardOption{session.WithNotifier(a.notify), session.WithLogger(log)}
	if c.ValidateSession {
		guardOpts = append(guardOpts, session.WithValidation(api))
	}
	a.router = router.New(session.NewGuard(sess, guardOpts...), a.auth, log)
	a.router.OnNavigate(a.onNavigate)

	a.banners = screens.NewBannerScreen(services.NewBannerService(api), a.notify,
		screens.WithClock(a.clock),
		screens.WithCarouselOptions(
			carousel.WithInterval(c.SlideInterval),
			carousel.WithTransitionDelay(c.TransitionDelay),
		),
		screens.WithBannerLogger(log),
	)

	fetch := pdfview.HTTPFetcher(&http.Client{Timeout: c.RequestTimeout})
	a.news = screens.NewNewsScreen(services.NewNewsService(api), a.notify, fetch, log)

	return a, nil
}

// Run shows the start screen and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to cmsadmin (type 'help' for commands)")
	a.router.Navigate(ctx, router.PathLogin)

	runREPL(ctx, a, a.status, a.reader)
}

// Close stops screen timers and closes the local store.
func (a *App) Close() {
	a.banners.Close()
	a.news.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.LoggedIn(context.Background())
}

func (a *App) status() string {
	switch p := a.router.Current(); p {
	case router.PathBanner:
		return fmt.Sprintf("%s [%s/%s]", p, a.banners.Type(), a.banners.Mode())
	case router.PathNews:
		return fmt.Sprintf("%s [%s]", p, a.news.Mode())
	default:
		return p
	}
}

// onUnauthorized runs after the gateway has cleared the session on a 401.
// Nothing fetched under the old session outlives it.
func (a *App) onUnauthorized(ctx context.Context) {
	a.resetScreens()
	a.notify.Error(ctx, NoticeSessionExpired)
	a.router.ForceNavigate(ctx, router.PathLogin)
}

func (a *App) resetScreens() {
	a.banners.Reset()
	a.news.Reset()
}

var screenTitles = map[string]string{
	router.PathLogin:  "Login",
	router.PathBanner: "Banner management",
	router.PathNews:   "News management",
}

func (a *App) onNavigate(ctx context.Context, path string) {
	if path != router.PathBanner {
		a.banners.Close()
	}
	if path != router.PathNews {
		a.news.Close()
		a.news.ClosePDF()
	}
	a.println(fmt.Sprintf("== %s (%s) ==", screenTitles[path], path))
}

// Go navigates to path, applying redirects and the session guard.
func (a *App) Go(ctx context.Context, path string) error {
	a.router.Navigate(ctx, path)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// requireScreen reports whether the current route is one of paths and
// explains otherwise.
func (a *App) requireScreen(cmd string, paths ...string) (string, bool) {
	cur := a.router.Current()
	for _, p := range paths {
		if cur == p {
			return cur, true
		}
	}
	if !a.isLoggedIn() {
		a.notify.Error(context.Background(), session.LoginRequiredNotice)
		return cur, false
	}
	a.println(fmt.Sprintf("%q is not available here; use 'banner' or 'news' first", cmd))
	return cur, false
}

// stillOn reports whether the route is still path. A forced logout during a
// request moves it away, and the caller must not print stale results.
func (a *App) stillOn(path string) bool {
	return a.router.Current() == path
}
