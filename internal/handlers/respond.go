package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photostore/internal/repository"
)

// Responses follow the {status, data} / {status, message} envelope.

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func respondList(c *gin.Context, results int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "results": results, "data": data})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "success", "message": message})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// respondStoreError maps store failures: unresolved ids become 404,
// everything else a generic 500 carrying the underlying message.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}

func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 1
	}
	tp := total / int64(limit)
	if total%int64(limit) != 0 {
		tp++
	}
	return tp
}
