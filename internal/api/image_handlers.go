package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

func (s *Server) registerImageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "uploadImage",
		Method:      http.MethodPost,
		Path:        "/api/v1/images",
		Summary:     "Upload event image",
		Description: "Stores an image and returns its URL and blur hash",
		Tags:        []string{"Images"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUploadImage)

	// Raw image bytes are served outside the enveloped API surface.
	s.router.Get("/images/{name}", s.handleServeImage)
}

// === DTOs ===

// UploadImageInput wraps raw image bytes for Huma.
type UploadImageInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	RawBody       []byte
}

// UploadImageResponse describes a stored image.
type UploadImageResponse struct {
	Name     string `json:"name" doc:"Stored file name"`
	URL      string `json:"url" doc:"Public URL for the image"`
	BlurHash string `json:"blur_hash,omitempty" doc:"BlurHash placeholder string"`
	Size     int    `json:"size" doc:"Stored size in bytes"`
}

// UploadImageOutput wraps the upload response for Huma.
type UploadImageOutput struct {
	Body UploadImageResponse
}

// === Handlers ===

func (s *Server) handleUploadImage(_ context.Context, input *UploadImageInput) (*UploadImageOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("Image body is empty")
	}

	result, err := s.processor.Process(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	return &UploadImageOutput{
		Body: UploadImageResponse{
			Name:     result.Name,
			URL:      strings.TrimSuffix(s.config.Server.PublicURL, "/") + "/images/" + result.Name,
			BlurHash: result.BlurHash,
			Size:     result.Size,
		},
	}, nil
}

func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || !s.images.Exists(name) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, s.images.Path(name))
}
