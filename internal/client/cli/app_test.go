package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/config"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/repositories/exports"
	"github.com/oceanticsports/oceantic-admin/internal/client/session"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

// backend is a minimal admin API serving articles, open events and the PDF
// event book.
type backend struct {
	mu       sync.Mutex
	role     string
	articles []map[string]any
	nextID   int
	created  map[string]string
}

func newBackend() *backend {
	return &backend{
		role: "admin",
		articles: []map[string]any{
			{"id": 1, "title": "Swim meet recap", "content": "...", "category": "News"},
			{"id": 2, "title": "Training tips", "content": "...", "category": "Tips", "image_url": "/uploads/tips.png"},
		},
		nextID: 3,
	}
}

func (b *backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/oceantic/v1", func(api chi.Router) {
		api.Post("/login", b.login)

		api.Group(func(protected chi.Router) {
			protected.Use(bearerAuth("tok"))
			protected.Get("/articles/getAllArticles", b.listArticles)
			protected.Get("/articles/getArticleById/{id}", b.getArticle)
			protected.Post("/articles/createArticle", b.createArticle)
			protected.Delete("/articles/deleteArticle/{id}", b.deleteArticle)
			protected.Get("/events/getAllEventsOpen", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "title": "Open Cup"}})
			})
			protected.Post("/generateEventBookPdf", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				_, _ = w.Write([]byte("%PDF-1.4"))
			})
		})
	})
	return r
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (b *backend) login(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"token": "tok",
		"user":  map[string]any{"id": 7, "fullname": "Ada Admin", "username": "ada", "role": b.role},
	})
}

func (b *backend) listArticles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": b.articles})
}

func (b *backend) getArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, a := range b.articles {
		if jsonID(a) == id {
			writeJSON(w, http.StatusOK, map[string]any{"data": a})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "article not found"})
}

func (b *backend) createArticle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.created = map[string]string{}
	for k, v := range r.MultipartForm.Value {
		b.created[k] = v[0]
	}
	b.articles = append(b.articles, map[string]any{
		"id": b.nextID, "title": b.created["title"], "content": b.created["content"], "category": b.created["category"],
	})
	b.nextID++
	writeJSON(w, http.StatusCreated, map[string]any{"message": "created"})
}

func (b *backend) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kept := b.articles[:0]
	for _, a := range b.articles {
		if jsonID(a) != id {
			kept = append(kept, a)
		}
	}
	b.articles = kept
	writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
}

func jsonID(a map[string]any) string {
	b, _ := json.Marshal(a["id"])
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func stubPassword(t *testing.T) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		return []byte("secret"), nil
	}
	t.Cleanup(func() { getPassword = old })
}

func newTestApp(t *testing.T, b *backend, input string, opts ...func(*Deps)) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL + "/oceantic/v1"
	cfg.AssetBaseURL = "https://cdn.example"
	cfg.ExportDir = t.TempDir()

	sess := session.NewProvider(nil)
	api, err := client.NewHTTPClient(cfg.APIBaseURL, sess)
	require.NoError(t, err)

	var out bytes.Buffer
	deps := Deps{API: api, Session: sess, In: strings.NewReader(input), Out: &out}
	for _, opt := range opts {
		opt(&deps)
	}
	return NewApp(cfg, deps), &out
}

func TestApp_Run_ManagesArticles(t *testing.T) {
	stubPassword(t)
	b := newBackend()
	script := strings.Join([]string{
		"ada",
		"whoami",
		"use articles",
		"filter Tips",
		"categories",
		"filter",
		"add",
		"set title Heat results",
		"submit",
		"set content Final heats",
		"set category News",
		"submit",
		"search heat",
		"proof 2",
		"delete 1",
		"n",
		"delete 1",
		"y",
		"export pdf 1",
		"logout",
		"list",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, b, script)
	app.Run(context.Background())
	text := out.String()

	assert.Contains(t, text, "Welcome, Ada Admin.")
	assert.Contains(t, text, "Username: ada")
	assert.Contains(t, text, "Training tips")
	assert.Contains(t, text, "  News\n  Tips\n")
	assert.Contains(t, text, "Please fix the following fields:")
	assert.Contains(t, text, "Saved.")
	assert.Contains(t, text, "https://cdn.example/uploads/tips.png")
	assert.Contains(t, text, "Cancelled.")
	assert.Contains(t, text, "Deleted.")
	assert.Contains(t, text, "Logged out.")
	assert.Contains(t, text, "Please log in first")

	assert.Equal(t, "Heat results", b.created["title"])
	assert.Equal(t, "7", b.created["user_id"])
	require.Len(t, b.articles, 2)
	assert.Equal(t, "Training tips", b.articles[0]["title"])

	data, err := os.ReadFile(filepath.Join(app.cfg.ExportDir, "buku_acara_open_cup.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestApp_Run_RejectsNonAdmin(t *testing.T) {
	stubPassword(t)
	b := newBackend()
	b.role = "user"

	app, out := newTestApp(t, b, "ada\nuse articles\nexit\n")
	app.Run(context.Background())

	assert.Contains(t, out.String(), common.ErrForbiddenRole.Error())
	assert.Contains(t, out.String(), "Please log in first")
	assert.False(t, app.isLoggedIn())
}

func TestApp_PageCommandsNeedResource(t *testing.T) {
	app, out := newTestApp(t, newBackend(), "")
	require.NoError(t, app.session.Save(context.Background(), sessionFor("tok")))

	for _, name := range []string{"list", "add", "next", "submit"} {
		cmd, ok := app.lookup(name)
		require.True(t, ok, name)
		assert.ErrorIs(t, cmd.run(context.Background(), nil), errNoPage, name)
	}

	cmd, _ := app.lookup("use")
	assert.ErrorContains(t, cmd.run(context.Background(), []string{"swimmers"}), "unknown resource")
	assert.Empty(t, out.String())
}

func TestApp_StatusLine(t *testing.T) {
	app, _ := newTestApp(t, newBackend(), "")
	assert.Equal(t, "", app.status())

	ctx := context.Background()
	require.NoError(t, app.session.Save(ctx, sessionFor("tok")))
	require.NoError(t, app.use(ctx, []string{"articles"}))
	assert.Equal(t, "(ada articles)", app.status())

	require.NoError(t, app.add(ctx, nil))
	assert.Equal(t, "(ada articles:add)", app.status())
}

func TestApp_ServerRejectsToken(t *testing.T) {
	app, out := newTestApp(t, newBackend(), "use articles\nexit\n")
	require.NoError(t, app.session.Save(context.Background(), sessionFor("stale")))

	runREPL(context.Background(), app, app.status, app.reader, app.out)

	assert.Contains(t, out.String(), "Session expired or rejected")
}

func sessionFor(token string) models.Session {
	return models.Session{Token: token, Role: "admin", FullName: "Ada Admin", UserID: "7", Username: "ada"}
}

func TestApp_ExportHistory(t *testing.T) {
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, out := newTestApp(t, newBackend(), "exports\nexport pdf 1\nexports\narchive\nexit\n", func(d *Deps) {
		d.History = exports.NewSQLiteRepository(db)
	})
	require.NoError(t, app.session.Save(context.Background(), sessionFor("tok")))

	runREPL(context.Background(), app, app.status, app.reader, app.out)
	text := out.String()

	assert.Contains(t, text, "No exports yet.")
	assert.Contains(t, text, "Saved ")
	assert.Contains(t, text, "Open Cup")
	assert.Contains(t, text, "none")
	assert.Contains(t, text, "Error: archiving is not configured")
}

func TestApp_ExportHistoryUnavailable(t *testing.T) {
	app, out := newTestApp(t, newBackend(), "exports\nexit\n")

	runREPL(context.Background(), app, app.status, app.reader, app.out)

	assert.Contains(t, out.String(), "Error: export history is not available")
}
