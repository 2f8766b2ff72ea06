package bresp

import (
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// WithContentLength sets the length of a file-backed body when the resource cannot tell it.
func WithContentLength(n int64) Option {
	return func(c *config) { c.length = &n }
}

// FileStream sends an externally owned resource as the body. Render returns the resource itself
// so the transport can fall back to zero-copy transfer. The resource is borrowed: whoever drains
// the body closes it, see [Drain].
type FileStream struct {
	base
	rd     io.Reader
	seeker io.Seeker
	start  int64
	length int64
}

var _ Response = (*FileStream)(nil)

// NewFileStream inits a response that streams rd from its current position. The content length is
// the resource's size minus that position when the size can be discovered. Otherwise it is zero
// and the transport is left to pick chunked framing.
func NewFileStream(rd io.Reader, opts ...Option) (*FileStream, error) {
	if rd == nil {
		return nil, errors.Wrap(ErrConstruction, "file resource must be readable")
	}

	if st, ok := rd.(statter); ok {
		if fi, err := st.Stat(); err == nil && fi.IsDir() {
			return nil, errors.Wrapf(ErrConstruction, "file resource %q is a directory", fi.Name())
		}
	}

	b, cfg, err := newBase(octetStream, int(CodeOK), opts)
	if err != nil {
		return nil, err
	}

	r := &FileStream{base: b, rd: rd}
	if sk, ok := rd.(io.Seeker); ok {
		if pos, err := sk.Seek(0, io.SeekCurrent); err == nil {
			r.seeker, r.start = sk, pos
		}
	}

	switch size, ok := sizeOf(rd); {
	case cfg.length != nil:
		r.length = *cfg.length
	case ok:
		r.length = max(size-r.start, 0)
	default:
		r.logger().LogUnknownContentLength()
	}

	return r, nil
}

// NewFile opens the file at path and streams it. The content type is guessed from the file
// extension, then from the content. A Last-Modified header is added unless already present.
func NewFile(path string, opts ...Option) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrAccess, "could not open %q for reading", path), err)
	}

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		f.Close()
		return nil, errors.Wrapf(ErrAccess, "could not stat %q as a regular file", path)
	}

	if ct := guessContentType(path, f); ct != "" {
		opts = append([]Option{WithContentType(ct)}, opts...)
	}

	r, err := NewFileStream(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	if !r.headers.Contains("Last-Modified") {
		r.headers.Add("Last-Modified", HTTPDate(fi.ModTime()))
	}

	return r, nil
}

// release closes the resource when the response is dropped without being drained.
func (r *FileStream) release() {
	if c, ok := r.rd.(io.Closer); ok {
		_ = c.Close()
	}
}

// ContentLength returns the number of bytes left in the resource, zero when unknown.
func (r *FileStream) ContentLength() int64 { return r.length }

// Data reads the resource from the start offset. Non-seekable resources return no data because
// reading them would consume the body.
func (r *FileStream) Data() ([]byte, error) {
	if r.seeker == nil {
		return []byte{}, nil
	}

	if _, err := r.seeker.Seek(r.start, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek to start offset")
	}

	data, err := io.ReadAll(r.rd)
	if err != nil {
		return nil, errors.Wrap(err, "read file resource")
	}

	if _, err := r.seeker.Seek(r.start, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rewind to start offset")
	}

	return data, nil
}

// Render commits the response and returns the resource, rewound to its start offset when it is
// seekable.
func (r *FileStream) Render(begin BeginFunc) (io.Reader, error) {
	return r.commit(begin,
		func() []Field { return r.fields(r.length) },
		func() (io.Reader, error) {
			if r.seeker != nil {
				if _, err := r.seeker.Seek(r.start, io.SeekStart); err != nil {
					return nil, errors.Wrap(err, "rewind file resource")
				}
			}

			return r.rd, nil
		})
}

type statter interface {
	Stat() (fs.FileInfo, error)
}

func sizeOf(rd io.Reader) (int64, bool) {
	switch v := rd.(type) {
	case statter:
		fi, err := v.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}

		return fi.Size(), true
	case interface{ Size() int64 }:
		return v.Size(), true
	case interface{ Len() int }:
		return int64(v.Len()), true
	default:
		return 0, false
	}
}

func guessContentType(path string, f *os.File) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}

	mt, err := mimetype.DetectReader(f)
	if _, serr := f.Seek(0, io.SeekStart); err != nil || serr != nil {
		return ""
	}

	return mt.String()
}
