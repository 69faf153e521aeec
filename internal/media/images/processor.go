package images

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// maxUploadSize caps event image uploads at 5 MiB.
const maxUploadSize = 5 << 20

// extensionsByType maps accepted content types to a file extension.
var extensionsByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadResult describes a stored event image.
type UploadResult struct {
	Name     string // File name under the event-images directory
	BlurHash string // Placeholder hash, empty if computation failed
	Size     int    // Bytes stored
	Hash     string // SHA256 of the stored bytes
}

// Processor validates, stores, and post-processes uploaded event images.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process validates and stores an uploaded image under a random name.
// The content type is sniffed from the bytes, never trusted from the client.
// BlurHash computation is best effort; a failure there does not fail the upload.
func (p *Processor) Process(imgData []byte) (*UploadResult, error) {
	if len(imgData) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}
	if len(imgData) > maxUploadSize {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", maxUploadSize)
	}

	contentType := http.DetectContentType(imgData)
	ext, ok := extensionsByType[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type: %s", contentType)
	}

	name := uuid.NewString() + "." + ext
	if err := p.storage.Save(name, imgData); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	hash, err := p.storage.Hash(name)
	if err != nil {
		return nil, fmt.Errorf("hash image: %w", err)
	}

	result := &UploadResult{
		Name: name,
		Size: len(imgData),
		Hash: hash,
	}

	if blur, err := ComputeBlurHash(imgData); err != nil {
		p.logger.Warn("blurhash computation failed", "name", name, "error", err)
	} else {
		result.BlurHash = blur
	}

	p.logger.Debug("stored event image",
		"name", name,
		"size", result.Size,
		"type", contentType,
	)

	return result, nil
}
