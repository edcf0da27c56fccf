package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"tenantadmin/internal/tenant/models"
	"tenantadmin/internal/upload"
	id "tenantadmin/pkg/domain"
	dErrors "tenantadmin/pkg/domain-errors"
	"tenantadmin/pkg/platform/httputil"
	request "tenantadmin/pkg/platform/middleware/request"
	s "tenantadmin/pkg/string"
)

// MaxProgramImages caps the files accepted under programImages.
const MaxProgramImages = 10

const (
	programImagesField = "programImages"
	actorQueryParam    = "userId"
	defaultMaxMemory   = 32 << 20
)

// Service is the tenant-management collaborator. Each call yields the full
// response: status, headers and body.
type Service interface {
	GetTenants(ctx context.Context) (*models.Result, error)
	CreateTenants(ctx context.Context, payload *models.CreatePayload) (*models.Result, error)
	UpdateTenants(ctx context.Context, tenantID id.TenantID, payload *models.UpdatePayload) (*models.Result, error)
	DeleteTenants(ctx context.Context, rawID string) (*models.Result, error)
}

// FileSaver stores one uploaded file.
type FileSaver interface {
	SaveFile(ctx context.Context, fh *multipart.FileHeader) (*upload.File, error)
}

type Handler struct {
	service           Service
	files             FileSaver
	logger            *slog.Logger
	uploadConcurrency int
	maxMemory         int64
}

type Option func(*Handler)

// WithUploadConcurrency bounds parallel uploads per request. 1 is sequential.
func WithUploadConcurrency(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.uploadConcurrency = n
		}
	}
}

// WithMaxMemory sets how much of a multipart body is held in memory before
// spilling files to disk.
func WithMaxMemory(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}

func New(service Service, files FileSaver, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:           service,
		files:             files,
		logger:            logger,
		uploadConcurrency: 1,
		maxMemory:         defaultMaxMemory,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/tenant/read", h.HandleRead)
	r.Post("/tenant/create", h.HandleCreate)
	r.Patch("/tenant/update/{id}", h.HandleUpdate)
	r.Delete("/tenant/delete", h.HandleDelete)
}

// HandleRead relays the tenant list.
func (h *Handler) HandleRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.GetTenants(ctx)
	if err != nil {
		h.fail(ctx, w, "read tenants failed", err)
		return
	}
	h.relay(w, res)
}

// HandleCreate stores uploaded program images, then creates the tenant with
// their paths in upload order.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &CreateTenantRequest{}
	files, err := h.decode(r, req)
	if err != nil {
		h.fail(ctx, w, "decode create tenant failed", err)
		return
	}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	images, err := h.saveImages(ctx, files)
	if err != nil {
		h.fail(ctx, w, "store program images failed", err)
		return
	}

	res, err := h.service.CreateTenants(ctx, req.ToPayload(images, actor(r)))
	if err != nil {
		h.fail(ctx, w, "create tenant failed", err)
		return
	}
	h.relay(w, res)
}

// HandleUpdate rejects a malformed path id before reading the body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return
	}

	req := &UpdateTenantRequest{}
	files, err := h.decode(r, req)
	if err != nil {
		h.fail(ctx, w, "decode update tenant failed", err)
		return
	}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	images, err := h.saveImages(ctx, files)
	if err != nil {
		h.fail(ctx, w, "store program images failed", err)
		return
	}

	res, err := h.service.UpdateTenants(ctx, tenantID, req.ToPayload(images, actor(r)))
	if err != nil {
		h.fail(ctx, w, "update tenant failed", err, "tenant_id", tenantID.String())
		return
	}
	h.relay(w, res)
}

// HandleDelete passes the id query parameter through unvalidated.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawID := r.URL.Query().Get("id")
	res, err := h.service.DeleteTenants(ctx, rawID)
	if err != nil {
		h.fail(ctx, w, "delete tenant failed", err, "tenant_id", rawID)
		return
	}
	h.relay(w, res)
}

// actor reads userId; absent and empty both mean no actor.
func actor(r *http.Request) *string {
	return s.NilIfEmpty(r.URL.Query().Get(actorQueryParam))
}

type formBinder interface {
	bindForm(v url.Values) error
}

// decode fills dst from a multipart or JSON body and returns the uploaded
// program images. An empty JSON body leaves dst zero.
func (h *Handler) decode(r *http.Request, dst formBinder) ([]*multipart.FileHeader, error) {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid content type")
		}
		mediaType = mt
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, dErrors.New(dErrors.CodePayloadTooLarge, "request body too large")
			}
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body")
		}
		if err := dst.bindForm(url.Values(r.MultipartForm.Value)); err != nil {
			return nil, err
		}
		files := r.MultipartForm.File[programImagesField]
		if len(files) > MaxProgramImages {
			return nil, dErrors.New(dErrors.CodeBadRequest,
				fmt.Sprintf("at most %d files may be uploaded as %s", MaxProgramImages, programImagesField))
		}
		return files, nil
	case "", "application/json":
		if err := httputil.DecodeJSONInto(r.Body, dst); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unsupported content type "+mediaType)
	}
}

// saveImages uploads files with bounded parallelism. Paths keep the request
// order; the first failure cancels uploads that have not started.
func (h *Handler) saveImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, len(files))
	if len(files) == 0 {
		return paths, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.uploadConcurrency)
	for i, fh := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stored, err := h.files.SaveFile(gctx, fh)
			if err != nil {
				return fmt.Errorf("save %q: %w", fh.Filename, err)
			}
			paths[i] = stored.FilePath
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store program images")
	}
	return paths, nil
}

// relay writes the service result: its headers, its status and the
// allow-listed body.
func (h *Handler) relay(w http.ResponseWriter, res *models.Result) {
	if res == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "empty service result"))
		return
	}
	for k, v := range res.Headers {
		w.Header().Set(k, v)
	}
	httputil.WriteJSON(w, res.Status, present(res.Body))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	// Client errors are the caller's problem; only server-side failures are logged.
	if httputil.StatusOf(err) >= http.StatusInternalServerError {
		args := append([]any{"error", err, "request_id", request.GetRequestID(ctx)}, attrs...)
		h.logger.ErrorContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
