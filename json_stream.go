//go:build !bresp_nojsonstream

package bresp

import (
	"iter"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

func init() {
	jsonStreamer = streamJSONObject
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// streamJSONObject yields an object with the keys in sorted order. Values that are sequences are
// written as arrays, one element per chunk. Encoding errors end the stream early.
func streamJSONObject(fields map[string]any) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		keys := lo.Keys(fields)
		slices.Sort(keys)

		if !yield([]byte("{")) {
			return
		}

		for i, key := range keys {
			name, err := jsonAPI.Marshal(key)
			if err != nil {
				return
			}

			if i > 0 {
				name = append([]byte(","), name...)
			}

			if !yield(append(name, ':')) {
				return
			}

			if !streamJSONValue(fields[key], yield) {
				return
			}
		}

		yield([]byte("}"))
	}
}

func streamJSONValue(v any, yield func([]byte) bool) bool {
	seq, ok := v.(iter.Seq[any])
	if !ok {
		data, err := jsonAPI.Marshal(v)
		if err != nil {
			return false
		}

		return yield(data)
	}

	if !yield([]byte("[")) {
		return false
	}

	first := true
	for elem := range seq {
		data, err := jsonAPI.Marshal(elem)
		if err != nil {
			return false
		}

		if !first {
			data = append([]byte(","), data...)
		}
		first = false

		if !yield(data) {
			return false
		}
	}

	return yield([]byte("]"))
}
