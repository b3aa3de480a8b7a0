// Package materialize turns raw generation output into URLs a browser can
// display.
package materialize

import (
	"context"
	"fmt"
	"net/http"

	"markova/internal/domain"
	"markova/internal/genai"
	"markova/internal/storage"
)

const (
	// DeliveryRehost downloads the video and serves it from local storage.
	DeliveryRehost = "rehost"
	// DeliveryPassthrough hands the signed remote URI to the client.
	DeliveryPassthrough = "passthrough"
)

// ImageDataURL combines an inline payload into a data: URL.
func ImageDataURL(data *genai.InlineData) (string, error) {
	if data == nil || data.Data == "" {
		return "", &domain.NoOutputError{Reason: "no image generated"}
	}
	mime := data.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, data.Data), nil
}

// Downloader fetches a remote file with the server-held credential.
type Downloader interface {
	Download(ctx context.Context, uri string) ([]byte, string, error)
}

// Writer is the storage a rehosted video lands in.
type Writer interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	URL(key string) string
}

// Videos materializes finished video jobs in a single delivery mode.
type Videos struct {
	mode       string
	downloader Downloader
	store      Writer
}

func NewVideos(mode string, downloader Downloader, store Writer) (*Videos, error) {
	switch mode {
	case DeliveryPassthrough:
	case DeliveryRehost:
		if downloader == nil || store == nil {
			return nil, fmt.Errorf("materialize: rehost delivery needs a downloader and a store")
		}
	default:
		return nil, fmt.Errorf("materialize: unknown delivery mode %q", mode)
	}
	return &Videos{mode: mode, downloader: downloader, store: store}, nil
}

func (v *Videos) Mode() string { return v.mode }

// Materialize returns the URL the client should play for job.
func (v *Videos) Materialize(ctx context.Context, job domain.GenerationJob) (string, error) {
	if job.ResultURI == "" {
		return "", &domain.NoOutputError{Reason: domain.NoVideoLinkMessage}
	}
	if v.mode == DeliveryPassthrough {
		return job.ResultURI, nil
	}
	data, mime, err := v.downloader.Download(ctx, job.ResultURI)
	if err != nil {
		return "", fmt.Errorf("download video: %w", err)
	}
	if len(data) == 0 {
		return "", &domain.NoOutputError{Reason: "downloaded video is empty"}
	}
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if mime == "application/octet-stream" {
		mime = "video/mp4"
	}
	key, err := v.store.Write(ctx, storage.MediaKey("videos", job.UserID, job.ID, mime), data)
	if err != nil {
		return "", err
	}
	return v.store.URL(key), nil
}
