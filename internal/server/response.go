package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	contentType = "Content-Type: application/json; charset=utf-8"

	// resultScale is the number of fractional digits in reported
	// amounts.
	resultScale = 2
)

// conversionResult is the success payload of a conversion request.
type conversionResult struct {
	BaseCurrency   string `json:"base_currency"`
	TargetCurrency string `json:"target_currency"`
	BaseAmount     string `json:"base_amount"`
	ResultAmount   string `json:"result_amount"`
}

// response is a framed reply owned by the connection handler that
// produced it: serialized once, then discarded.
type response struct {
	code   int
	status string
	body   interface{}
}

func newResponse(code int, status string, body interface{}) *response {
	return &response{code: code, status: status, body: body}
}

// writeTo frames the response onto w. The body is wrapped into a
// status envelope and the content length is computed from the encoded
// bytes, so multi-byte characters never truncate the body.
func (r *response) writeTo(w io.Writer) error {
	envelope := make(map[string]interface{}, 2)
	if r.code == 200 {
		envelope["status"] = "success"
		envelope["result"] = r.body
	} else {
		envelope["status"] = "error"
		if r.body != nil {
			envelope["message"] = r.body
		} else {
			envelope["message"] = r.status
		}
	}

	content, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "encoding response body")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %s\r\n", httpVersion, r.code, r.status)
	fmt.Fprintf(&buf, "%s\r\n", contentType)
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(content))
	buf.WriteString("\r\n")
	buf.Write(content)

	_, err = w.Write(buf.Bytes())
	return errors.Wrap(err, "writing response")
}
