package file

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/auto-explainer/core/internal/config"
)

type fakeMirror struct {
	keys         []string
	contentTypes []string
	err          error
}

func (f *fakeMirror) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	return "https://cdn.example.com/" + key, nil
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		ok   bool
	}{
		{"brochure.pdf", ".pdf", true},
		{"Plan.PNG", ".png", true},
		{"photo.JpG", ".jpg", true},
		{"render.jpeg", ".jpeg", true},
		{"notes.txt", ".txt", false},
		{"archive.pdf.zip", ".zip", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := NormalizeExtension(tt.name)
			assert.Equal(t, tt.ext, ext)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSaveWritesPayloadUnderRandomName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(dir, nil, "", nil)
	require.NoError(t, err)

	saved, err := store.Save(context.Background(), "Marina Brochure.PDF", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(saved.Path))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}\.pdf$`), filepath.Base(saved.Path))
	assert.Empty(t, saved.StorageURL)

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	again, err := store.Save(context.Background(), "Marina Brochure.PDF", []byte("x"))
	require.NoError(t, err)
	assert.NotEqual(t, saved.Path, again.Path)
}

func TestSaveMirrorsWithPrefix(t *testing.T) {
	mirror := &fakeMirror{}
	store, err := NewStore(t.TempDir(), mirror, "/sources/", nil)
	require.NoError(t, err)

	saved, err := store.Save(context.Background(), "plan.png", []byte("png"))
	require.NoError(t, err)

	require.Len(t, mirror.keys, 1)
	assert.Equal(t, "sources/"+filepath.Base(saved.Path), mirror.keys[0])
	assert.Equal(t, "image/png", mirror.contentTypes[0])
	assert.Equal(t, "https://cdn.example.com/"+mirror.keys[0], saved.StorageURL)
}

func TestSaveIgnoresMirrorFailure(t *testing.T) {
	store, err := NewStore(t.TempDir(), &fakeMirror{err: errors.New("bucket gone")}, "", nil)
	require.NoError(t, err)

	saved, err := store.Save(context.Background(), "plan.jpg", []byte("jpg"))
	require.NoError(t, err)
	assert.Empty(t, saved.StorageURL)
	assert.FileExists(t, saved.Path)
}

func TestNewS3MirrorValidation(t *testing.T) {
	_, err := NewS3Mirror(appcfg.S3Config{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewS3Mirror(appcfg.S3Config{Bucket: "b", Region: "r", Endpoint: "https://"})
	assert.Error(t, err)
}

func TestS3MirrorPublicURL(t *testing.T) {
	m, err := NewS3Mirror(appcfg.S3Config{Bucket: "launch", Region: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://launch.s3.eu-west-1.amazonaws.com/sources/a%20b.pdf", m.publicURL("sources/a b.pdf"))

	m, err = NewS3Mirror(appcfg.S3Config{Bucket: "launch", Region: "eu-west-1", CustomDomain: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.pdf", m.publicURL("x.pdf"))

	m, err = NewS3Mirror(appcfg.S3Config{Bucket: "launch", Region: "auto", Endpoint: "minio.local:9000"})
	require.NoError(t, err)
	assert.Equal(t, "https://launch.minio.local:9000/x.pdf", m.publicURL("x.pdf"))
}

func TestS3MirrorUpload(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   []byte
		ctype  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method = r.Method
		path = r.URL.Path
		ctype = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m, err := NewS3Mirror(appcfg.S3Config{
		Bucket:          "launch",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		PathStyleAccess: true,
	})
	require.NoError(t, err)

	url, err := m.Upload(context.Background(), "/sources//file.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/launch/sources/file.pdf", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/launch/sources/file.pdf", path)
	assert.Equal(t, "application/pdf", ctype)
	assert.Contains(t, string(body), "%PDF")
}

func TestS3MirrorUploadRejectsEmptyKey(t *testing.T) {
	m, err := NewS3Mirror(appcfg.S3Config{Bucket: "b", Region: "r"})
	require.NoError(t, err)
	_, err = m.Upload(context.Background(), " / ", nil, "")
	assert.Error(t, err)
}
