package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":           http.StatusNotFound,
	"USER_NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS":      http.StatusConflict,
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_GROUP":       http.StatusBadRequest,
	"INVALID_PARENT":      http.StatusBadRequest,
	"INVALID_SHOP":        http.StatusBadRequest,
	"INVALID_DATE":        http.StatusBadRequest,
	"INVALID_IMPORT":      http.StatusBadRequest,
	"NO_PHOTO":            http.StatusBadRequest,
	"EMPTY_INVOICE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"STORAGE_DISABLED":    http.StatusServiceUnavailable,
	"INTERNAL_ERROR":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
