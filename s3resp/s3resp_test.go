package s3resp_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/advdv/bresp"
	"github.com/advdv/bresp/s3resp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type object struct {
	body         string
	contentType  string
	etag         string
	lastModified time.Time
}

type fakeS3 struct {
	objects map[string]object
	inputs  []*s3.GetObjectInput
	closed  int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.inputs = append(f.inputs, in)

	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}

	if inm := aws.ToString(in.IfNoneMatch); inm != "" && inm == obj.etag {
		return nil, statusErr(http.StatusNotModified)
	}

	out := &s3.GetObjectOutput{
		Body:          &trackedBody{Reader: strings.NewReader(obj.body), closed: &f.closed},
		ContentLength: aws.Int64(int64(len(obj.body))),
		ETag:          aws.String(obj.etag),
		LastModified:  aws.Time(obj.lastModified),
	}
	if obj.contentType != "" {
		out.ContentType = aws.String(obj.contentType)
	}

	return out, nil
}

type trackedBody struct {
	io.Reader
	closed *int
}

func (b *trackedBody) Close() error {
	*b.closed++
	return nil
}

type statusErr int

func (e statusErr) Error() string       { return http.StatusText(int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func newFake() *fakeS3 {
	return &fakeS3{objects: map[string]object{
		"docs/readme.txt": {
			body:         "hello from s3",
			contentType:  "text/plain",
			etag:         `"abc"`,
			lastModified: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		"blob": {body: "raw", etag: `"def"`},
	}}
}

func TestNewObject(t *testing.T) {
	fake := newFake()

	resp, err := s3resp.NewObject(context.Background(), fake, "bucket", "docs/readme.txt")
	require.NoError(t, err)
	require.Equal(t, int64(13), resp.ContentLength())
	require.Equal(t, "text/plain", resp.ContentType())
	require.Equal(t, "bucket", aws.ToString(fake.inputs[0].Bucket))

	rec := httptest.NewRecorder()
	bresp.Serve(rec, resp, bresp.NewTestLogger(t))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello from s3", rec.Body.String())
	require.Equal(t, "13", rec.Header().Get("Content-Length"))
	require.Equal(t, `"abc"`, rec.Header().Get("ETag"))
	require.Equal(t, "Fri, 01 Mar 2024 10:00:00 GMT", rec.Header().Get("Last-Modified"))
	require.Equal(t, 1, fake.closed)
}

func TestNewObjectOptionsWin(t *testing.T) {
	resp, err := s3resp.NewObject(context.Background(), newFake(), "bucket", "blob",
		bresp.WithContentType("application/x-custom"),
		bresp.WithHeaderFields(bresp.Field{Name: "ETag", Value: `"mine"`}))
	require.NoError(t, err)
	require.Equal(t, "application/x-custom", resp.ContentType())
	require.Equal(t, []string{`"mine"`}, resp.Headers().Values("ETag"))
}

func TestNewObjectMissing(t *testing.T) {
	_, err := s3resp.NewObject(context.Background(), newFake(), "bucket", "nope")

	sig, ok := bresp.SignalOf(err)
	require.True(t, ok)
	require.Equal(t, bresp.CodeNotFound, sig.Code())

	var nsk *types.NoSuchKey
	require.ErrorAs(t, err, &nsk)
}

func TestNewObjectOtherError(t *testing.T) {
	_, err := s3resp.NewObject(context.Background(), failingS3{}, "bucket", "x")
	require.ErrorContains(t, err, `get object "x": access denied`)

	_, ok := bresp.SignalOf(err)
	require.False(t, ok)
}

type failingS3 struct{}

func (failingS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("access denied")
}

func TestHandler(t *testing.T) {
	fake := newFake()
	mux := bresp.NewServeMuxWith(bresp.NewTestLogger(t), http.NewServeMux(), bresp.NewReverser(), nil)
	mux.MountFunc("GET /files", s3resp.Handler(fake, "bucket"))

	t.Run("found", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/files/docs/readme.txt", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "hello from s3", rec.Body.String())
	})

	t.Run("not modified", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/files/docs/readme.txt", nil)
		req.Header.Set("If-None-Match", `"abc"`)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotModified, rec.Code)
		require.Equal(t, `"abc"`, rec.Header().Get("ETag"))
		require.Empty(t, rec.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/files/other", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("directory", func(t *testing.T) {
		n := len(fake.inputs)
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/files/docs/", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Len(t, fake.inputs, n)
	})
}
