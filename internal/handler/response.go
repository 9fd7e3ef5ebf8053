package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/forgo/foodfest/api/internal/model"
)

// maxBodyBytes caps create request bodies.
const maxBodyBytes = 1 << 20

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a single JSON object from the request body into v.
// Unknown fields and trailing data are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// decodeError turns a DecodeJSON failure into a 400 problem.
func decodeError(err error) *model.ProblemDetails {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return model.NewBadRequestError(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	}
	return model.NewBadRequestError("invalid request body: " + err.Error())
}
