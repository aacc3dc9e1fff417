package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// fail maps service and repository errors onto the response envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotAllowed):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrSemesterClosed):
		response.Fail(c, http.StatusConflict, response.ErrSemesterClosed)
	case errors.Is(err, service.ErrSemesterInactive):
		response.Fail(c, http.StatusConflict, response.ErrSemesterInactive)
	case errors.Is(err, service.ErrHasDependents):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateCode):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrUnknownRole),
		errors.Is(err, service.ErrProfileRequired),
		errors.Is(err, service.ErrInvalidBirthday),
		errors.Is(err, service.ErrUnknownPermission):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramInt parses a numeric path parameter; a false return means the
// response has already been written.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return v, true
}

// queryInt parses a required numeric query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return v, true
}
