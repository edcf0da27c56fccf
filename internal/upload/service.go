package upload

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"tenantadmin/internal/platform/tracer"
)

// Service stores multipart uploads under unique keys.
type Service struct {
	store   Store
	tracer  tracer.Tracer
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, tracer: tracer.NewNoop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveFile stores one uploaded file. Keys are date-partitioned and random so
// client file names never collide or escape the storage root.
func (s *Service) SaveFile(ctx context.Context, fh *multipart.FileHeader) (_ *File, err error) {
	if fh == nil {
		return nil, fmt.Errorf("file is required")
	}
	backend := s.store.Backend()
	ctx, span := s.tracer.Start(ctx, tracer.SpanUploadSave,
		tracer.String(tracer.AttrUploadBackend, backend),
		tracer.Int64(tracer.AttrUploadSize, fh.Size),
	)
	defer func() { span.End(err) }()
	defer func() {
		if s.metrics != nil {
			s.metrics.observe(backend, fh.Size, err)
		}
	}()

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	contentType := detectContentType(fh)
	stored, err := s.store.Put(ctx, s.objectKey(fh.Filename), src, fh.Size, contentType)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to store upload",
				"file_name", fh.Filename,
				"backend", backend,
				"error", err,
			)
		}
		return nil, err
	}
	return &File{
		FilePath:     stored,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		ContentType:  contentType,
	}, nil
}

func (s *Service) objectKey(filename string) string {
	return s.now().UTC().Format("2006/01/02") + "/" + uuid.NewString() + safeExt(filename)
}

// safeExt keeps a short alphanumeric extension and drops anything else.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// detectContentType trusts a specific client type and sniffs the content
// when the client sent none or the generic octet-stream.
func detectContentType(fh *multipart.FileHeader) string {
	declared := fh.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	f, err := fh.Open()
	if err != nil {
		return declared
	}
	defer f.Close()
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return declared
	}
	return mtype.String()
}
