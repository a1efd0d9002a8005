package client

import (
	"context"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
)

// Payload is the body of a create or update. Fields are scalars keyed by
// wire name; Files are sent as multipart parts.
type Payload struct {
	Fields    map[string]any
	Files     []models.FileUpload
	Multipart bool
}

// IsMultipart reports whether the payload must be multipart encoded.
func (p Payload) IsMultipart() bool {
	return p.Multipart || len(p.Files) > 0
}

type Client interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	List(ctx context.Context, d *resource.Descriptor, parentID string) ([]models.Record, error)
	ListPath(ctx context.Context, path string) ([]models.Record, error)
	Get(ctx context.Context, d *resource.Descriptor, id string) (models.Record, error)
	Create(ctx context.Context, d *resource.Descriptor, p Payload) error
	Update(ctx context.Context, d *resource.Descriptor, id string, p Payload) error
	Delete(ctx context.Context, d *resource.Descriptor, id string) error
	Action(ctx context.Context, a *resource.Action, body map[string]any) error
	Download(ctx context.Context, path string, body any) (*models.Blob, error)
}

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
