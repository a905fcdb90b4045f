package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mirror.ErrModelNotFound),
		errors.Is(err, mirror.ErrDatasetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, mirror.ErrInvalidRepoType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, mirror.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
