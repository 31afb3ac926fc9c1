package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// Pagination and validation constants.
const (
	defaultPageSize    = 50
	maxPageSize        = 100
	maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies
)

// validate checks struct tags on request bodies.
var validate = validator.New()

// decodeBody reads and unmarshals a JSON request body into dst, then runs
// struct tag validation. Writes a 400 response and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid field: %s", verrs[0].Field()))
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}

	return true
}

// domainErrorStatus maps a domain error to an HTTP status code and a client
// message. Internal error details are not leaked to clients.
func domainErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		var nfe *domain.NotFoundError
		if errors.As(err, &nfe) {
			return http.StatusNotFound, nfe.Error()
		}
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return http.StatusBadRequest, ve.Error()
		}
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, "resource already exists"
	case errors.Is(err, domain.ErrStoreFailure):
		return http.StatusInternalServerError, "storage operation failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeDomainError maps domain errors to appropriate HTTP status codes and
// writes a JSON error response.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status, message := domainErrorStatus(err)
	writeError(w, status, message)
}

// parseID parses a positive integer ID from a path parameter, writing a 400
// error response if invalid.
func parseID(w http.ResponseWriter, s, fieldName string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", fieldName))
		return 0, false
	}
	return id, true
}

// parsePaginationParams extracts page_size and page_token from query parameters.
// It applies default and maximum bounds to the page size.
func parsePaginationParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if parsed, err := strconv.Atoi(pageSizeStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if pageToken := r.URL.Query().Get("page_token"); pageToken != "" {
		decoded, err := base64.StdEncoding.DecodeString(pageToken)
		if err == nil {
			if parsed, parseErr := strconv.Atoi(string(decoded)); parseErr == nil && parsed > 0 {
				offset = parsed
			}
		}
	}

	return limit, offset
}

// encodePageToken encodes the next offset as a base64 page token.
// Returns an empty string if there are no more results.
func encodePageToken(offset, limit, totalCount int) string {
	nextOffset := offset + limit
	if nextOffset < totalCount {
		return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(nextOffset)))
	}
	return ""
}
