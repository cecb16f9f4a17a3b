// Package api holds the JSON envelope every HTTP endpoint responds with and
// the helpers route handlers share.
package api

import (
	"encoding/json"
	"net/http"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
)

// BaseResponse represents the standard response structure for all API endpoints
type BaseResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Response represents a complete API response with optional data
type Response struct {
	BaseResponse
	Data interface{} `json:"data,omitempty"`
}

// NewSuccessResponse creates a successful response with optional data
func NewSuccessResponse(data interface{}) Response {
	return Response{
		BaseResponse: BaseResponse{Success: true},
		Data:         data,
	}
}

// NewErrorResponse creates an error response with a kind tag and message
func NewErrorResponse(code, errorMsg string) Response {
	return Response{
		BaseResponse: BaseResponse{
			Success: false,
			Code:    code,
			Error:   errorMsg,
		},
	}
}

// SendJSON writes a JSON response to the HTTP response writer
func (r Response) SendJSON(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(r)
}

// Helper functions for common response patterns

// Success sends a successful response with data
func Success(w http.ResponseWriter, data interface{}) {
	NewSuccessResponse(data).SendJSON(w, http.StatusOK)
}

// Created sends a 201 response with data
func Created(w http.ResponseWriter, data interface{}) {
	NewSuccessResponse(data).SendJSON(w, http.StatusCreated)
}

// SuccessEmpty sends a successful response with no data
func SuccessEmpty(w http.ResponseWriter) {
	NewSuccessResponse(nil).SendJSON(w, http.StatusOK)
}

// BadRequest sends a 400 error response
func BadRequest(w http.ResponseWriter, message string) {
	NewErrorResponse(kerrors.EInvalid, message).SendJSON(w, http.StatusBadRequest)
}

// Error sends the response matching a classified error. Storage failures
// only expose the generic message; the cause stays in the logs.
func Error(w http.ResponseWriter, err error) {
	NewErrorResponse(kerrors.ErrorCode(err), kerrors.ErrorMessage(err)).SendJSON(w, kerrors.StatusCode(err))
}

// DecodeJSON decodes the request body into dst, answering 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "Invalid JSON")
		return false
	}
	return true
}
