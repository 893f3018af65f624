package moodle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fastjson"
)

// Response is the raw result of a web-service call
type Response struct {
	Function   string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode parses the body into out. A Moodle exception payload is returned as
// a *RemoteError instead. Void functions answer with null or an empty body,
// which leaves out untouched.
func (r *Response) Decode(out any) error {
	body := bytes.TrimSpace(r.Body)
	if len(body) == 0 {
		return nil
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, r.Function, err)
	}

	if v.Type() == fastjson.TypeObject && v.Exists("exception") {
		return &RemoteError{
			Function:  r.Function,
			Exception: string(v.GetStringBytes("exception")),
			ErrorCode: string(v.GetStringBytes("errorcode")),
			Message:   string(v.GetStringBytes("message")),
			DebugInfo: string(v.GetStringBytes("debuginfo")),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", r.Function, err)
	}
	return nil
}
