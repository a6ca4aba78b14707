package media

import "context"

// UploadResult is the stable reference returned by the media store.
type UploadResult struct {
	PublicID string
	URL      string
}

// Uploader stores an image in the external media host. Failures are surfaced
// to the caller, never retried.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error)
}
