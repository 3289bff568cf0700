package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

func PostJournalEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.JournalRequest
		if !bindJSON(c, app, &req) {
			return
		}
		entry, err := service.AddJournalEntry(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("journal", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save journal entry")
			return
		}
		HandleCreated(c, app.Logger(), entry)
	}
}

// GetJournalEntries lists entries newest first; ?limit=N caps the result.
func GetJournalEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		HandleSuccess(c, app.Logger(), service.RecentJournalEntries(profile.JournalEntries, limit), nil)
	}
}

func PostMindfulness(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MindfulnessRequest
		if !bindJSON(c, app, &req) {
			return
		}
		activity, err := service.AddMindfulnessActivity(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("mindfulness", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to log mindfulness activity")
			return
		}
		HandleCreated(c, app.Logger(), activity)
	}
}

func GetMindfulness(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		summary := service.SummarizeMindfulness(profile.MindfulnessActivities)
		meta := map[string]any{
			"count":           summary.Count,
			"total_minutes":   summary.TotalMinutes,
			"average_minutes": summary.AverageMinutes,
		}
		HandleSuccess(c, app.Logger(), profile.MindfulnessActivities, meta)
	}
}

func PostPhoto(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PhotoRequest
		if !bindJSON(c, app, &req) {
			return
		}
		photo, err := service.UploadPhoto(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("photo", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to upload photo")
			return
		}
		HandleCreated(c, app.Logger(), photo)
	}
}

func GetPhotos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), profile.ProgressPhotos, nil)
	}
}

// GetBaselinePhoto responds with no data when no photo is flagged baseline.
func GetBaselinePhoto(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), service.BaselinePhoto(profile.ProgressPhotos), nil)
	}
}

func GetFollowupPhoto(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), service.FollowupPhoto(profile.ProgressPhotos), nil)
	}
}
