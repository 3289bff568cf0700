package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

func GetMedications(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), profile.Medications, nil)
	}
}

func PostMedication(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MedicationRequest
		if !bindJSON(c, app, &req) {
			return
		}
		med, err := service.AddMedication(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("medication", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to add medication")
			return
		}
		HandleCreated(c, app.Logger(), med)
	}
}

func PutMedication(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.MedicationRequest
		if !bindJSON(c, app, &req) {
			return
		}
		med, err := service.UpdateMedication(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("medication", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update medication")
			return
		}
		HandleSuccess(c, app.Logger(), med, nil)
	}
}

func DeleteMedication(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		err := service.DeleteMedication(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id)
		metrics.RecordMutation("medication", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete medication")
			return
		}
		HandleSuccess(c, app.Logger(), true, nil)
	}
}

// PostAdherence appends one adherence log; earlier logs are untouched.
func PostAdherence(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.AdherenceRequest
		if !bindJSON(c, app, &req) {
			return
		}
		entry, err := service.LogAdherence(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("adherence", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to log adherence")
			return
		}
		HandleCreated(c, app.Logger(), entry)
	}
}
