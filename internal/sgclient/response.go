package sgclient

import (
	"bytes"
	"encoding/json"
)

// Response is a fully read SG response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the body parses as JSON, whatever the declared content type.
func (r *Response) IsJSON() bool {
	return len(bytes.TrimSpace(r.Body)) > 0 && json.Valid(r.Body)
}

// Decode unmarshals the body into v, keeping numbers as json.Number.
func (r *Response) Decode(v any) error {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	return dec.Decode(v)
}

// Detail returns the decoded JSON body, or the body as text when it is not JSON.
func (r *Response) Detail() any {
	if r.IsJSON() {
		var v any
		if err := r.Decode(&v); err == nil {
			return v
		}
	}
	return string(r.Body)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}
