package document

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal renders v the way documents are stored on disk: two-space indent
// and a trailing newline.
func Marshal(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := jsonAPI.NewEncoder(buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.B), nil
}

func decodeRaw(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw any
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// convert moves a generic decoded document into a typed value.
func convert(raw any, out any) error {
	data, err := jsonAPI.Marshal(raw)
	if err != nil {
		return err
	}
	return jsonAPI.Unmarshal(data, out)
}
