package services

import (
	"context"
	"errors"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginRet *models.LoginResult
	LoginErr error

	LastLoginUser     string
	LastLoginPassword string

	Options     map[string][]models.Record
	DownloadRet *models.Blob
	DownloadErr error

	LastDownloadPath string
	LastDownloadBody any
}

var errNotUsed = errors.New("not used")

func (f *fakeClient) Login(_ context.Context, username, password string) (*models.LoginResult, error) {
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) List(context.Context, *resource.Descriptor, string) ([]models.Record, error) {
	return nil, errNotUsed
}

func (f *fakeClient) ListPath(_ context.Context, path string) ([]models.Record, error) {
	return f.Options[path], nil
}

func (f *fakeClient) Get(context.Context, *resource.Descriptor, string) (models.Record, error) {
	return nil, errNotUsed
}

func (f *fakeClient) Create(context.Context, *resource.Descriptor, client.Payload) error {
	return errNotUsed
}

func (f *fakeClient) Update(context.Context, *resource.Descriptor, string, client.Payload) error {
	return errNotUsed
}

func (f *fakeClient) Delete(context.Context, *resource.Descriptor, string) error {
	return errNotUsed
}

func (f *fakeClient) Action(context.Context, *resource.Action, map[string]any) error {
	return errNotUsed
}

func (f *fakeClient) Download(_ context.Context, path string, body any) (*models.Blob, error) {
	f.LastDownloadPath = path
	f.LastDownloadBody = body
	return f.DownloadRet, f.DownloadErr
}
