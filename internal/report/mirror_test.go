package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"
)

// fakeS3 answers the bucket and object calls S3Mirror makes. The first failHeads
// bucket checks are refused with 403.
type fakeS3 struct {
	mu        sync.Mutex
	failHeads int
	heads     int
	makes     int
	bucket    bool
	objects   map[string]string
}

func (s *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := strings.SplitN(strings.Trim(r.URL.Path, "/"), "/", 2)
	switch {
	case len(parts) == 1 && r.Method == http.MethodHead:
		s.heads++
		if s.heads <= s.failHeads {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if !s.bucket {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case len(parts) == 1 && r.Method == http.MethodPut:
		s.makes++
		s.bucket = true
		w.WriteHeader(http.StatusOK)
	case len(parts) == 2 && r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		s.objects[parts[1]] = string(body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newTestMirror(t *testing.T, s3 *fakeS3) *S3Mirror {
	t.Helper()
	srv := httptest.NewServer(s3)
	t.Cleanup(srv.Close)

	m, err := NewS3Mirror(S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "reports",
		UseSSL:    false,
	})
	assert.Equal(t, nil, err)
	return m
}

func TestS3MirrorCreatesBucketOnce(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{}}
	m := newTestMirror(t, s3)
	ctx := context.Background()

	assert.Equal(t, nil, m.Put(ctx, DefaultPath, []byte("title\nA\n")))
	assert.Equal(t, nil, m.Put(ctx, DefaultPath, []byte("title\nB\n")))

	assert.Equal(t, 1, s3.heads)
	assert.Equal(t, 1, s3.makes)
	assert.Equal(t, true, strings.Contains(s3.objects[DefaultPath], "title\nB\n"))
}

func TestS3MirrorRetriesBucketCheckAfterFailure(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{}, failHeads: 1, bucket: true}
	m := newTestMirror(t, s3)
	ctx := context.Background()

	err := m.Put(ctx, DefaultPath, []byte("title\nA\n"))
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(s3.objects))

	err = m.Put(ctx, DefaultPath, []byte("title\nA\n"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, s3.heads)
	assert.Equal(t, 0, s3.makes)
	assert.Equal(t, true, strings.Contains(s3.objects[DefaultPath], "title\nA\n"))
}

func TestS3MirrorRecoversFromCancelledFirstCall(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{}, bucket: true}
	m := newTestMirror(t, s3)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Put(cancelled, DefaultPath, []byte("title\nA\n"))
	assert.NotEqual(t, nil, err)

	err = m.Put(context.Background(), DefaultPath, []byte("title\nA\n"))
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(s3.objects[DefaultPath], "title\nA\n"))
}

func TestCompileThroughS3Mirror(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{}, failHeads: 1}
	c := newTestCompiler(t, Options{Mirror: newTestMirror(t, s3)})
	ctx := context.Background()

	res, err := c.Compile(ctx, records(t, `[{"title":"A"}]`))
	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, res.MirrorErr)
	assert.Equal(t, "title\nA\n", readFile(t, c.Path()))

	res, err = c.Compile(ctx, records(t, `[{"title":"B"}]`))
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, res.MirrorErr)
	assert.Equal(t, true, strings.Contains(s3.objects[DefaultPath], "title\nB\n"))
}

func TestNewS3MirrorValidatesConfig(t *testing.T) {
	_, err := NewS3Mirror(S3Config{Endpoint: "localhost:9000", Bucket: "reports"})
	assert.NotEqual(t, nil, err)

	_, err = NewS3Mirror(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.NotEqual(t, nil, err)
}
