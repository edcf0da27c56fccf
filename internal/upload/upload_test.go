package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a parsed multipart file header the way net/http would.
func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("programImages", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["programImages"][0]
}

type fakeS3 struct {
	inputs  []*s3.PutObjectInput
	bodies  []string
	putErr  error
	headErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestLocalStoreSaveFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Health(context.Background()))

	metrics := NewMetricsWithRegistry(prometheus.NewRegistry())
	svc := New(store, WithMetrics(metrics))
	svc.now = func() time.Time { return time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC) }

	file, err := svc.SaveFile(context.Background(), fileHeader(t, "../../logo.PNG", "png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "logo.PNG", file.OriginalName, "multipart reduces client names to their base")
	assert.Equal(t, int64(len("png-bytes")), file.Size)
	assert.True(t, strings.HasPrefix(file.FilePath, filepath.Join(dir, "2026", "04", "09")), file.FilePath)
	assert.Equal(t, ".png", filepath.Ext(file.FilePath))

	written, err := os.ReadFile(file.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(written))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Saved.WithLabelValues("local", "success")))
}

func TestSaveFileUniquePaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := New(store)

	a, err := svc.SaveFile(context.Background(), fileHeader(t, "same.png", "a"))
	require.NoError(t, err)
	b, err := svc.SaveFile(context.Background(), fileHeader(t, "same.png", "b"))
	require.NoError(t, err)
	assert.NotEqual(t, a.FilePath, b.FilePath)
}

func TestSaveFileNilHeader(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	_, err = New(store).SaveFile(context.Background(), nil)
	assert.Error(t, err)
}

func TestS3StoreSaveFile(t *testing.T) {
	t.Run("puts object under prefix", func(t *testing.T) {
		client := &fakeS3{}
		svc := New(NewS3StoreWithClient(client, "tenant-assets", "/images/"))

		file, err := svc.SaveFile(context.Background(), fileHeader(t, "banner.jpg", "jpeg"))
		require.NoError(t, err)

		require.Len(t, client.inputs, 1)
		in := client.inputs[0]
		assert.Equal(t, "tenant-assets", aws.ToString(in.Bucket))
		assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "images/"))
		assert.Equal(t, int64(4), aws.ToInt64(in.ContentLength))
		assert.Equal(t, "text/plain; charset=utf-8", aws.ToString(in.ContentType))
		assert.Equal(t, "jpeg", client.bodies[0])
		assert.Equal(t, "s3://tenant-assets/"+aws.ToString(in.Key), file.FilePath)
	})

	t.Run("propagates put failure", func(t *testing.T) {
		client := &fakeS3{putErr: errors.New("access denied")}
		metrics := NewMetricsWithRegistry(prometheus.NewRegistry())
		svc := New(NewS3StoreWithClient(client, "tenant-assets", ""), WithMetrics(metrics))

		_, err := svc.SaveFile(context.Background(), fileHeader(t, "banner.jpg", "jpeg"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Saved.WithLabelValues("s3", "failure")))
	})

	t.Run("health uses head bucket", func(t *testing.T) {
		store := NewS3StoreWithClient(&fakeS3{headErr: errors.New("no such bucket")}, "missing", "")
		assert.ErrorContains(t, store.Health(context.Background()), "no such bucket")
	})
}

func TestSafeExt(t *testing.T) {
	assert.Equal(t, ".png", safeExt("a.PNG"))
	assert.Equal(t, "", safeExt("noext"))
	assert.Equal(t, "", safeExt("weird.p$g"))
	assert.Equal(t, ".gz", safeExt("archive.tar.gz"))
}

func TestDetectContentTypeSniffsPNG(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	fh := fileHeader(t, "image.bin", png)
	assert.Equal(t, "image/png", detectContentType(fh))
}
