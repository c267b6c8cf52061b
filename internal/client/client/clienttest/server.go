// Package clienttest provides an in-memory fake of the CMS REST API for
// tests of the gateway and everything built on it.
package clienttest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultEmail    = "admin@example.org"
	DefaultPassword = "s3cret"
)

var signingKey = []byte("clienttest-signing-key")

// Banner and News mirror the JSON the real API emits, with numeric ids.
type Banner struct {
	ID              int64  `json:"id"`
	Type            string `json:"type"`
	DesktopImageURL string `json:"desktopImageUrl"`
	MobileImageURL  string `json:"mobileImageUrl"`
}

type News struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	PDFURL      string `json:"pdfUrl,omitempty"`
	PublicID    string `json:"publicId,omitempty"`
}

// Server is a running fake. All fields are guarded by mu; use the methods.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	nextID     int64
	banners    []Banner
	news       []News
	files      map[string][]byte
	calls      map[string]int
	lastHeader map[string]http.Header
	revoked    bool
	forbidNews bool
	failAll    int
	tokenTTL   time.Duration
	hold       chan struct{}
}

// NewServer starts a fake with no content. Close it when done.
func NewServer() *Server {
	s := &Server{
		files:      map[string][]byte{},
		calls:      map[string]int{},
		lastHeader: map[string]http.Header{},
		tokenTTL:   time.Hour,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Post("/api/auth/login", s.login)
	r.Get("/files/{name}", s.file)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/banners", s.listBanners)
		r.Get("/api/banners/type/{type}", s.listBanners)
		r.Post("/api/banners/upload", s.uploadBanner)
		r.Delete("/api/banners/{id}", s.deleteBanner)

		r.Group(func(r chi.Router) {
			r.Use(s.forbidden)
			r.Get("/api/news", s.listNews)
			r.Post("/api/news/upload", s.uploadNews)
			r.Delete("/api/news/{id}", s.deleteNews)
		})
	})
	return r
}

// record counts requests per route pattern after routing, e.g.
// "GET /api/banners/type/{type}".
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = rc.RoutePattern()
		}
		key := r.Method + " " + pattern

		s.mu.Lock()
		s.calls[key]++
		s.lastHeader[key] = r.Header.Clone()
		s.mu.Unlock()
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		revoked, hold := s.revoked, s.hold
		failing := s.failAll > 0
		if failing {
			s.failAll--
		}
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}

		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || revoked {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forbidden(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		deny := s.forbidNews
		s.mu.Unlock()
		if deny {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("email") != DefaultEmail || q.Get("password") != DefaultPassword {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := s.IssueToken(time.Now().Add(s.ttl()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// IssueToken signs a token the fake accepts until exp.
func (s *Server) IssueToken(exp time.Time) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   DefaultEmail,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString(signingKey)
}

func (s *Server) ttl() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenTTL
}

func (s *Server) listBanners(w http.ResponseWriter, r *http.Request) {
	t := chi.URLParam(r, "type")
	if t == "" {
		t = r.URL.Query().Get("type")
	}

	s.mu.Lock()
	out := make([]Banner, 0, len(s.banners))
	for _, b := range s.banners {
		if t == "" || b.Type == t {
			out = append(out, b)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadBanner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "bad multipart", http.StatusBadRequest)
		return
	}
	desktop, err := formFile(r, "desktopImage")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mobile, err := formFile(r, "mobileImage")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	b := Banner{
		ID:              s.nextID,
		Type:            r.FormValue("type"),
		DesktopImageURL: s.storeLocked(fmt.Sprintf("%d-desktop-%s", s.nextID, desktop.name), desktop.data),
		MobileImageURL:  s.storeLocked(fmt.Sprintf("%d-mobile-%s", s.nextID, mobile.name), mobile.data),
	}
	s.banners = append(s.banners, b)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) deleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.banners {
		if b.ID == id {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "banner not found", http.StatusNotFound)
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]News{}, s.news...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "bad multipart", http.StatusBadRequest)
		return
	}
	n := News{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Author:      r.FormValue("author"),
		Date:        time.Now().UTC().Format("2006-01-02"),
	}
	if n.Title == "" || n.Description == "" || n.Author == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}
	pdf, pdfErr := formFile(r, "pdf")

	s.mu.Lock()
	s.nextID++
	n.ID = s.nextID
	if pdfErr == nil {
		n.PublicID = fmt.Sprintf("news/%d", n.ID)
		n.PDFURL = s.storeLocked(fmt.Sprintf("%d-%s", n.ID, pdf.name), pdf.data)
	}
	s.news = append(s.news, n)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.news {
		if n.ID == id {
			s.news = append(s.news[:i], s.news[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "news not found", http.StatusNotFound)
}

func (s *Server) file(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, ok := s.files[chi.URLParam(r, "name")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func (s *Server) storeLocked(name string, data []byte) string {
	s.files[name] = data
	return s.URL + "/files/" + name
}

type upload struct {
	name string
	data []byte
}

func formFile(r *http.Request, field string) (upload, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return upload{}, fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, err
	}
	return upload{name: hdr.Filename, data: data}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SeedBanner stores a banner directly and returns it.
func (s *Server) SeedBanner(bannerType, desktopURL, mobileURL string) Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b := Banner{ID: s.nextID, Type: bannerType, DesktopImageURL: desktopURL, MobileImageURL: mobileURL}
	s.banners = append(s.banners, b)
	return b
}

// SeedNews stores a news item directly. A non-nil pdf is served from
// /files/ and linked from the item.
func (s *Server) SeedNews(title, description, author string, pdf []byte) News {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n := News{ID: s.nextID, Title: title, Description: description, Author: author, Date: "2026-10-01"}
	if pdf != nil {
		n.PDFURL = s.storeLocked(fmt.Sprintf("%d.pdf", n.ID), pdf)
		n.PublicID = fmt.Sprintf("news/%d", n.ID)
	}
	s.news = append(s.news, n)
	return n
}

// Banners returns a snapshot of the stored banners.
func (s *Server) Banners() []Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Banner{}, s.banners...)
}

// News returns a snapshot of the stored news items.
func (s *Server) News() []News {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]News{}, s.news...)
}

// Calls reports how many requests hit key ("METHOD /route/{pattern}").
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// LastHeader returns the headers of the latest request for key.
func (s *Server) LastHeader(key string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeader[key]
}

// RevokeTokens makes every protected request fail with 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	s.revoked = true
	s.mu.Unlock()
}

// ForbidNews makes news endpoints answer 403.
func (s *Server) ForbidNews(v bool) {
	s.mu.Lock()
	s.forbidNews = v
	s.mu.Unlock()
}

// FailNext makes the next n protected requests answer 500.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	s.failAll = n
	s.mu.Unlock()
}

// Hold blocks protected requests until the returned release func is called.
func (s *Server) Hold() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(ch)
		})
	}
}
