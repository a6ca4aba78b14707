package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/spec-kit/course-marketplace/internal/config"
)

const uploadURLTemplate = "https://api.cloudinary.com/v1_1/%s/image/upload"

// CloudinaryUploader posts signed image uploads to the Cloudinary upload API.
type CloudinaryUploader struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
	now       func() time.Time
}

// NewCloudinaryUploader builds an uploader from config.
func NewCloudinaryUploader(cfg config.CloudinaryConfig) *CloudinaryUploader {
	return &CloudinaryUploader{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   fmt.Sprintf(uploadURLTemplate, cfg.CloudName),
		client:    &http.Client{Timeout: cfg.UploadTimeout()},
		now:       time.Now,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a signed multipart upload and returns the stored reference.
func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	timestamp := strconv.FormatInt(u.now().Unix(), 10)
	signature := u.sign(timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"api_key":   u.apiKey,
		"timestamp": timestamp,
		"signature": signature,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("media store rejected upload: %s", parsed.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("media store returned status %d", resp.StatusCode)
	}
	if parsed.PublicID == "" {
		return nil, fmt.Errorf("media store returned no result")
	}

	url := parsed.SecureURL
	if url == "" {
		url = parsed.URL
	}
	return &UploadResult{PublicID: parsed.PublicID, URL: url}, nil
}

// sign computes the Cloudinary request signature: SHA-1 over the sorted
// parameter string with the API secret appended.
func (u *CloudinaryUploader) sign(timestamp string) string {
	sum := sha1.Sum([]byte("timestamp=" + timestamp + u.apiSecret))
	return hex.EncodeToString(sum[:])
}
