package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"album-uploader/configs"
	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time checks
var (
	_ output.AlbumCatalog = (*PocketBaseClientAdapter)(nil)
	_ output.UploadSink   = (*PocketBaseClientAdapter)(nil)
)

// Retry configuration for idempotent reads. Uploads are never retried.
const (
	maxRetryAttempts  = 3
	initialDelay      = 200 * time.Millisecond
	maxDelay          = 2 * time.Second
	backoffMultiplier = 2
)

// albumPageSize is the number of albums requested per listing
const albumPageSize = 200

// Collection names used by the album backend
const (
	DefaultAlbumCollection = "album"
	DefaultImageCollection = "wallpaper"
)

// PocketBaseClientAdapter struct - Output adapter for the PocketBase records API.
// Serves as both the album catalog and the upload sink.
type PocketBaseClientAdapter struct {
	httpClient      *http.Client
	baseURL         string
	albumCollection string
	imageCollection string
	timeout         time.Duration
}

// NewPocketBaseClientAdapter func - Creates new PocketBase client adapter
func NewPocketBaseClientAdapter(config configs.Upload) (*PocketBaseClientAdapter, error) {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: upload base url is required", domain.ErrConfiguration)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid upload base url: %v", domain.ErrConfiguration, err)
	}

	albumCollection := config.AlbumCollection
	if albumCollection == "" {
		albumCollection = DefaultAlbumCollection
	}
	imageCollection := config.ImageCollection
	if imageCollection == "" {
		imageCollection = DefaultImageCollection
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("PocketBase client adapter initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return &PocketBaseClientAdapter{
		httpClient:      httpClient,
		baseURL:         baseURL,
		albumCollection: albumCollection,
		imageCollection: imageCollection,
		timeout:         timeout,
	}, nil
}

// recordsURL returns the records endpoint of a collection
func (a *PocketBaseClientAdapter) recordsURL(collection string) string {
	return fmt.Sprintf("%s/api/collections/%s/records", a.baseURL, url.PathEscape(collection))
}

// ListAlbums fetches the album collection
func (a *PocketBaseClientAdapter) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	query := url.Values{}
	query.Set("perPage", fmt.Sprint(albumPageSize))
	query.Set("sort", "name")
	endpoint := a.recordsURL(a.albumCollection) + "?" + query.Encode()

	resp, err := a.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return a.httpClient.Do(req)
	})
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorAlbumCatalog, "failed to list albums", err)
	}
	defer resp.Body.Close()

	var page albumListResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorAlbumCatalog, "failed to parse album list", err)
	}

	albums := make([]domain.Album, 0, len(page.Items))
	for _, item := range page.Items {
		if item.ID == "" {
			continue
		}
		name := item.Name
		if name == "" {
			name = item.ID
		}
		albums = append(albums, domain.Album{ID: item.ID, Name: name})
	}

	if page.TotalItems > len(page.Items) {
		logrus.Warnf("Album catalog has %d albums, only the first %d are offered", page.TotalItems, len(page.Items))
	}
	logrus.Infof("Listed %d albums from PocketBase", len(albums))

	return albums, nil
}

// Upload creates one image record with a multipart body
func (a *PocketBaseClientAdapter) Upload(ctx context.Context, record domain.UploadRecord) (*domain.Receipt, error) {
	body, contentType, err := encodeRecord(record)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorUpload, "failed to encode record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.recordsURL(a.imageCollection), body)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorUpload, "failed to create upload request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorUpload, "failed to send upload request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewCollaboratorError(domain.CollaboratorUpload,
			fmt.Sprintf("upload rejected with status %d", resp.StatusCode), readAPIError(resp.Body))
	}

	var created recordResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, domain.NewCollaboratorError(domain.CollaboratorUpload, "failed to parse upload response", err)
	}

	logrus.Infof("Created record %s in %s for album %s", created.ID, a.imageCollection, record.AlbumID)

	return &domain.Receipt{
		ID:         created.ID,
		Collection: a.imageCollection,
	}, nil
}

// encodeRecord builds the multipart form PocketBase expects for file fields
func encodeRecord(record domain.UploadRecord) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"title", record.Title},
		{"resolution", record.Resolution},
		{"album_id", record.AlbumID},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.key, field.value); err != nil {
			return nil, "", err
		}
	}

	part, err := writer.CreateFormFile("image_file", record.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(record.ImageBytes); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// retryWithBackoff executes an operation with exponential backoff retry logic
func (a *PocketBaseClientAdapter) retryWithBackoff(ctx context.Context, operation func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		resp, err := operation()

		if err != nil {
			if !isTransientError(err, 0) {
				return nil, err
			}
			lastErr = err
			logrus.Warnf("PocketBase request attempt %d/%d failed with error: %v, retrying in %v", attempt, maxRetryAttempts, err, delay)
		} else {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			apiErr := readAPIError(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %w", resp.StatusCode, apiErr)

			// Don't retry on 4xx client errors
			if !isTransientError(nil, resp.StatusCode) {
				return nil, lastErr
			}
			logrus.Warnf("PocketBase request attempt %d/%d failed with status %d, retrying in %v", attempt, maxRetryAttempts, resp.StatusCode, delay)
		}

		if attempt < maxRetryAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}

			delay = delay * backoffMultiplier
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return nil, fmt.Errorf("%v after %d attempts", lastErr, maxRetryAttempts)
}

// isTransientError determines if an error or status code is worth retrying
func isTransientError(err error, statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	if statusCode >= 400 && statusCode < 500 {
		return false
	}
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// readAPIError extracts the PocketBase error message from a response body
func readAPIError(body io.Reader) error {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read error body: %w", err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return &apiErr
	}
	return errors.New(strings.TrimSpace(string(raw)))
}
