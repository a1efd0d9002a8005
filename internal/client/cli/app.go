package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/oceanticsports/oceantic-admin/internal/client/archive"
	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/config"
	"github.com/oceanticsports/oceantic-admin/internal/client/page"
	"github.com/oceanticsports/oceantic-admin/internal/client/repositories/exports"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/client/services"
	"github.com/oceanticsports/oceantic-admin/internal/client/session"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
)

// Deps are the collaborators an App drives. Zero values fall back to
// stdin/stdout, the default resource registry and a no-op logger.
type Deps struct {
	API      client.Client
	Session  *session.Provider
	Archiver archive.Archiver
	History  exports.Repository
	Registry *resource.Registry
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer
}

// App is the interactive admin client. At most one resource page is
// mounted at a time.
type App struct {
	cfg      *config.Config
	api      client.Client
	session  *session.Provider
	auth     services.AuthService
	exports  *services.ExportService
	registry *resource.Registry
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	page *page.Composer
	cmds map[string]command
	db   *sql.DB
}

// NewApp assembles an App from already constructed dependencies.
func NewApp(cfg *config.Config, d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Registry == nil {
		d.Registry = resource.Default()
	}
	if d.Session == nil {
		d.Session = session.NewProvider(nil)
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}

	a := &App{
		cfg:      cfg,
		api:      d.API,
		session:  d.Session,
		auth:     services.NewAuthService(d.API, d.Session, d.Logger),
		exports:  newExportService(cfg, d),
		registry: d.Registry,
		log:      d.Logger,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
	a.cmds = a.commandTable()
	return a
}

func newExportService(cfg *config.Config, d Deps) *services.ExportService {
	var opts []services.ExportOption
	if d.History != nil {
		opts = append(opts, services.WithHistory(d.History))
	}
	return services.NewExportService(d.API, d.Session, cfg.ExportDir, d.Archiver, d.Logger, opts...)
}

// Open wires the full client from cfg: the session database, the REST
// client authenticated by the stored session and, when configured, the
// S3 archiver and the export history. Close releases the database.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	sess := session.NewProvider(db)
	if err := sess.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, sess,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	deps := Deps{API: api, Session: sess, History: exports.NewSQLiteRepository(db), Logger: log}
	if cfg.S3.Enabled() {
		arch, err := archive.NewS3Archiver(archive.Config{
			Bucket:     cfg.S3.Bucket,
			Region:     cfg.S3.Region,
			Endpoint:   cfg.S3.Endpoint,
			AccessKey:  cfg.S3.AccessKey,
			SecretKey:  cfg.S3.SecretKey,
			Prefix:     cfg.S3.Prefix,
			LinkExpiry: cfg.S3.LinkExpiry,
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		deps.Archiver = arch
	}

	a := NewApp(cfg, deps)
	a.db = db
	return a, nil
}

// Close releases the session database, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run prompts for credentials when no session is stored, then serves the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Oceantic admin (type 'help' for commands)")
	if !a.isLoggedIn() {
		report(a.out, a.login(ctx, nil))
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Guard() == nil
}

func (a *App) lookup(name string) (command, bool) {
	c, ok := a.cmds[name]
	return c, ok
}

func (a *App) status() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session.Current().Username
	}
	if a.page != nil {
		if s != "" {
			s += " "
		}
		s += a.page.Descriptor().Name
		if st := a.page.State(); st != page.StateList {
			s += ":" + st.String()
		}
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
