package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 403:
		resp = response.Forbidden(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 409:
		resp = response.Conflict(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleServiceError maps domain errors onto HTTP statuses.
func HandleServiceError(c *gin.Context, logger internal.Logger, err error, msg string) {
	HandleError(c, logger, err, statusFor(err), msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internal.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, internal.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, internal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, internal.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Created", requestID)
	c.JSON(http.StatusCreated, response.Success(data, nil))
}

// bindJSON decodes the body into req, writing a 400 on failure.
func bindJSON(c *gin.Context, app App, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

func pathID(c *gin.Context, app App) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		if err == nil {
			err = errors.New("id must be positive")
		}
		HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
