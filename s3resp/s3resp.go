// Package s3resp streams S3 objects as bresp responses.
package s3resp

import (
	"context"
	"net/http"
	"strings"

	"github.com/advdv/bresp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
)

// GetObjectAPI is the part of the S3 client that is needed to read objects.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ GetObjectAPI = (*s3.Client)(nil)

// NewObject reads the object under key and returns it as a file stream. The length, content
// type, ETag and modification time come from the object's metadata, options in opts take
// precedence. A missing object results in a [bresp.CodeNotFound] signal.
func NewObject(ctx context.Context, client GetObjectAPI, bucket, key string, opts ...bresp.Option) (*bresp.FileStream, error) {
	return newObject(ctx, client, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}, opts)
}

func newObject(ctx context.Context, client GetObjectAPI, in *s3.GetObjectInput, opts []bresp.Option) (*bresp.FileStream, error) {
	out, err := client.GetObject(ctx, in)
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, bresp.AbortErr(bresp.CodeNotFound, err)
		}

		return nil, errors.Wrapf(err, "get object %q", aws.ToString(in.Key))
	}

	var meta []bresp.Option
	if out.ContentLength != nil {
		meta = append(meta, bresp.WithContentLength(*out.ContentLength))
	}

	if ct := aws.ToString(out.ContentType); ct != "" {
		meta = append(meta, bresp.WithContentType(ct))
	}

	resp, err := bresp.NewFileStream(out.Body, append(meta, opts...)...)
	if err != nil {
		out.Body.Close()
		return nil, err
	}

	h := resp.Headers()
	if etag := aws.ToString(out.ETag); etag != "" && !h.Contains("ETag") {
		h.Add("ETag", etag)
	}

	if out.LastModified != nil && !h.Contains("Last-Modified") {
		h.Add("Last-Modified", bresp.HTTPDate(*out.LastModified))
	}

	if cc := aws.ToString(out.CacheControl); cc != "" && !h.Contains("Cache-Control") {
		h.Add("Cache-Control", cc)
	}

	return resp, nil
}

// Handler serves the objects of bucket, using the request path without its leading slash as the
// key. Conditional requests with If-None-Match are answered with Not Modified when S3 reports
// the object as unchanged.
func Handler(client GetObjectAPI, bucket string) bresp.HandlerFunc {
	return func(ctx context.Context, r *http.Request) (bresp.Response, error) {
		key := strings.TrimPrefix(r.URL.Path, "/")
		if key == "" || strings.HasSuffix(key, "/") {
			return nil, bresp.Abort(bresp.CodeNotFound)
		}

		in := &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}
		inm := r.Header.Get("If-None-Match")
		if inm != "" {
			in.IfNoneMatch = aws.String(inm)
		}

		resp, err := newObject(ctx, client, in, nil)
		if inm != "" && statusOf(err) == http.StatusNotModified {
			return bresp.NewNotModified(bresp.WithETag(inm))
		}

		if err != nil {
			return nil, err
		}

		return resp, nil
	}
}

func statusOf(err error) int {
	var re interface{ HTTPStatusCode() int }
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}

	return 0
}
