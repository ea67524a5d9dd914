// Package handle implements the gin request handlers for the vault API.
// Handlers do transport work only: bind, call a service, map the typed error
// to a status. All domain rules live in pkg/internal/service.
package handle

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/log"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize = 50 * 1024 * 1024 // 50MB

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrDuplicateName), errors.Is(err, apperr.ErrConflictingDelete):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// formImage reads one multipart image field. When required is false a missing
// field yields (nil, true); any other failure writes the response itself and
// returns ok=false.
func formImage(c *gin.Context, field string, required bool) ([]byte, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": field + " file is required"})

		return nil, false
	}

	if fh.Size > MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " exceeds the size limit"})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	if int64(len(data)) > MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " exceeds the size limit"})
		return nil, false
	}

	return data, true
}
