package bresp

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Drain copies a rendered body to w and closes it afterwards when it is an [io.Closer]. The copy
// goes through [io.Copy], so files reach sendfile when w supports it.
func Drain(w io.Writer, body io.Reader) (int64, error) {
	if body == nil {
		return 0, nil
	}

	n, err := io.Copy(w, body)
	if c, ok := body.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close body")
		}
	}

	if err != nil {
		return n, errors.Wrap(err, "copy body")
	}

	return n, nil
}
