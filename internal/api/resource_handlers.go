package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

// GetResources lists resources, optionally filtered by ?q= and ?type=.
func GetResources(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources, err := app.ResourceRepo().ListResources(c.Request.Context())
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to list resources")
			return
		}
		if q := c.Query("q"); q != "" {
			resources = service.SearchResources(resources, q)
		}
		if t := c.Query("type"); t != "" {
			resources = service.ResourcesByType(resources, t)
		}
		HandleSuccess(c, app.Logger(), resources, nil)
	}
}

func GetResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		r, err := app.ResourceRepo().GetResource(c.Request.Context(), id)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Resource not found")
			return
		}
		HandleSuccess(c, app.Logger(), r, nil)
	}
}

func PostResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ResourceRequest
		if !bindJSON(c, app, &req) {
			return
		}
		r, err := service.AddResource(c.Request.Context(), app.ResourceRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("resource", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to add resource")
			return
		}
		HandleCreated(c, app.Logger(), r)
	}
}

func PutResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.ResourceRequest
		if !bindJSON(c, app, &req) {
			return
		}
		r, err := service.UpdateResource(c.Request.Context(), app.ResourceRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("resource", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update resource")
			return
		}
		HandleSuccess(c, app.Logger(), r, nil)
	}
}

func DeleteResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		err := service.DeleteResource(c.Request.Context(), app.ResourceRepo(), auth.CurrentUser(c), id)
		metrics.RecordMutation("resource", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete resource")
			return
		}
		HandleSuccess(c, app.Logger(), true, nil)
	}
}
