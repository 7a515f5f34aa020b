package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"substation-inspection-backend/internal/evidence"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Client wraps the Drive API for evidence storage: find-or-create
// folder hierarchies and per-file uploads.
type Client struct {
	svc            *drive.Service
	parentFolderID string
}

// New creates a Drive client on top of an authenticated HTTP client.
func New(ctx context.Context, httpClient *http.Client, parentFolderID string, opts ...option.ClientOption) (*Client, error) {
	allOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{svc: svc, parentFolderID: parentFolderID}, nil
}

// EnsureFolder returns the ID of the folder with the given name under
// parentID, creating it when absent. Trashed folders are ignored.
// Lookup-then-create has no transactional guarantee: two concurrent
// first calls for the same name can race and create duplicate
// siblings. Idempotency is best-effort only.
func (c *Client) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf(
		"name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), escapeQuery(parentID), folderMimeType,
	)

	list, err := c.svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("folder lookup %q failed: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	created, err := c.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder create %q failed: %w", name, err)
	}
	return created.Id, nil
}

// ResolveDailyFolder ensures the two-level hierarchy
// parent -> substation -> substation_{DDMMYY} and returns the daily
// folder ID.
func (c *Client) ResolveDailyFolder(ctx context.Context, substationName string, day time.Time) (string, error) {
	stationID, err := c.EnsureFolder(ctx, substationName, c.parentFolderID)
	if err != nil {
		return "", err
	}
	return c.EnsureFolder(ctx, evidence.DailyFolderName(substationName, day), stationID)
}

// Upload stores one file in the given folder, preserving the declared
// name and content type.
func (c *Client) Upload(ctx context.Context, folderID, name, contentType string, data []byte) error {
	_, err := c.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("upload %q failed: %w", name, err)
	}
	return nil
}

// FolderLink builds the browser deep link to a folder.
func (c *Client) FolderLink(folderID string) string {
	return "https://drive.google.com/drive/folders/" + folderID
}

// escapeQuery escapes single quotes and backslashes for Drive search
// query string literals.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
