package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

var errInvalidBody = errors.New("invalid request body")

// readFields reads the named fields from a JSON or form-encoded body as raw
// strings. JSON numbers keep their literal text; null and absent fields are "".
func readFields(r *http.Request, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
		for _, n := range names {
			out[n] = r.PostFormValue(n)
		}
		return out, nil
	}

	var body map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, errInvalidBody
	}
	for _, n := range names {
		switch v := body[n].(type) {
		case nil:
			out[n] = ""
		case string:
			out[n] = v
		case json.Number:
			out[n] = v.String()
		default:
			out[n] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out, nil
}
