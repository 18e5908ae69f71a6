package media

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayush/ai-diary/backend/internal/apperr"
	"github.com/ayush/ai-diary/backend/internal/models"
	"github.com/ayush/ai-diary/backend/internal/store"
	"github.com/ayush/ai-diary/backend/internal/web"
)

// UploadsPath is where stored files are served from.
const UploadsPath = "/uploads"

// ImageStore defines the interface for image record persistence.
type ImageStore interface {
	InsertImage(ctx context.Context, img *models.Image) (*models.Image, error)
	ListImages(ctx context.Context) ([]models.Image, error)
}

// FileStore defines the interface for the upload area.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// Handler holds image upload, analysis and listing handlers.
type Handler struct {
	images    ImageStore
	files     FileStore
	namer     *Namer
	analyzer  Analyzer
	publicURL string
	log       *zap.Logger
}

// NewHandler builds a Handler. publicURL is the externally reachable base
// of this server, used to build the URLs of stored files.
func NewHandler(images ImageStore, files FileStore, namer *Namer, analyzer Analyzer, publicURL string, log *zap.Logger) *Handler {
	return &Handler{
		images:    images,
		files:     files,
		namer:     namer,
		analyzer:  analyzer,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
	}
}

// FileURL returns the public URL of a stored file.
func (h *Handler) FileURL(name string) string {
	return h.publicURL + UploadsPath + "/" + name
}

// saveAttempts bounds how many fresh names are tried when the upload area
// already holds a file under the generated name.
const saveAttempts = 5

// save writes data under a fresh name with the given prefix and returns
// the name and its public URL.
func (h *Handler) save(ctx context.Context, prefix string, data []byte) (string, string, error) {
	contentType := http.DetectContentType(data)
	var err error
	for range saveAttempts {
		var name string
		name, err = h.namer.Name(ctx, prefix)
		if err != nil {
			return "", "", apperr.Internal("media.Name", err)
		}
		err = h.files.Upload(ctx, name, data, contentType)
		if err == nil {
			return name, h.FileURL(name), nil
		}
		if !errors.Is(err, store.ErrFileExists) {
			break
		}
		h.log.Warn("Upload name already taken", zap.String("file", name))
	}
	return "", "", apperr.Internal("media.Upload", err)
}

// insert records an image. A failed insert leaves the written file behind;
// it is logged and not removed.
func (h *Handler) insert(ctx context.Context, img *models.Image, file string) (*models.Image, error) {
	saved, err := h.images.InsertImage(ctx, img)
	if err != nil {
		if file != "" {
			h.log.Warn("Image record not saved, file left orphaned", zap.String("file", file), zap.Error(err))
		}
		return nil, apperr.Internal("media.InsertImage", err)
	}
	return saved, nil
}

// Upload stores an image given either as a URL or a base64 data URI.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	var req models.UploadRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := r.Context()
	if !IsDataURI(req.URL) {
		img, err := h.insert(ctx, &models.Image{URL: req.URL, Type: models.ImageOriginal}, "")
		if err != nil {
			return err
		}
		h.log.Info("Image URL saved", zap.String("url", img.URL))
		return web.WriteJSON(w, http.StatusOK, web.Message{"message": "upload complete (URL)", "img": img})
	}

	data, err := DecodeImage(req.URL)
	if err != nil {
		return err
	}
	name, url, err := h.save(ctx, uploadPrefix, data)
	if err != nil {
		return err
	}
	img, err := h.insert(ctx, &models.Image{URL: url, Type: models.ImageOriginal}, name)
	if err != nil {
		return err
	}

	h.log.Info("Image saved", zap.String("url", url), zap.Int("bytes", len(data)))
	return web.WriteJSON(w, http.StatusOK, web.Message{"message": "upload complete (base64)", "img": img})
}

// ListImages returns every image record, newest first.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) error {
	imgs, err := h.images.ListImages(r.Context())
	if err != nil {
		return apperr.Internal("media.ListImages", err)
	}
	if imgs == nil {
		imgs = []models.Image{}
	}
	return web.WriteJSON(w, http.StatusOK, imgs)
}

// Analyze stores the image as an analysis artifact and returns keywords.
// Failures after validation are reported as an analysis failure with the
// cause in details.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) error {
	var req models.AnalyzeRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	data, err := DecodeImage(req.ImageData)
	if err != nil {
		return err
	}

	ctx := r.Context()
	name, url, err := h.save(ctx, analyzedPrefix, data)
	if err != nil {
		return analysisFailed(err)
	}
	if _, err := h.insert(ctx, &models.Image{URL: url, Type: models.ImageAnalyzed}, name); err != nil {
		return analysisFailed(err)
	}
	keywords, err := h.analyzer.Analyze(ctx, data)
	if err != nil {
		return analysisFailed(apperr.Internal("media.Analyze", err))
	}

	h.log.Info("Analysis result saved", zap.String("url", url))
	return web.WriteJSON(w, http.StatusOK, web.Message{
		"message":     "analysis complete and saved",
		"keywords":    keywords,
		"analyzedUrl": url,
	})
}

func analysisFailed(err error) error {
	return &web.DetailedError{Msg: "image analysis failed", Err: err}
}

// Serve streams a stored file from the upload area.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, "name")
	if !store.ValidKey(name) {
		return apperr.Invalid("invalid file name")
	}

	data, contentType, err := h.files.Download(r.Context(), name)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Debug("Serving file interrupted", zap.String("file", name), zap.Error(err))
	}
	return nil
}
