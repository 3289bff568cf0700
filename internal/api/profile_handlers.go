package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

func PostProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		var req service.ProfileRequest
		if !bindJSON(c, app, &req) {
			return
		}
		profile, err := service.CreateProfile(c.Request.Context(), app.ProfileRepo(), user, &req)
		metrics.RecordMutation("profile", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to create profile")
			return
		}
		HandleCreated(c, app.Logger(), profile)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), user.ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func PutProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		var body internal.UserProfile
		if !bindJSON(c, app, &body) {
			return
		}
		profile, err := service.SaveProfile(c.Request.Context(), app.ProfileRepo(), user, &body)
		metrics.RecordMutation("profile", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save profile")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func GetPoints(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		points, err := service.GetPoints(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch points")
			return
		}
		HandleSuccess(c, app.Logger(), points, nil)
	}
}

func PostCompleteOnboarding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := service.CompleteOnboarding(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c))
		metrics.RecordMutation("onboarding", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to complete onboarding")
			return
		}
		HandleSuccess(c, app.Logger(), true, nil)
	}
}

func GetOnboarding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		done, err := service.IsOnboardingCompleted(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch onboarding state")
			return
		}
		HandleSuccess(c, app.Logger(), done, nil)
	}
}

func GetUsageDuration(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), profile.UsageDurationMonths, nil)
	}
}

func PutUsageDuration(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UsageDurationRequest
		if !bindJSON(c, app, &req) {
			return
		}
		profile, err := service.SetUsageDuration(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("usage_duration", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to set usage duration")
			return
		}
		HandleSuccess(c, app.Logger(), profile.UsageDurationMonths, nil)
	}
}

func GetOverview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		HandleSuccess(c, app.Logger(), service.BuildOverview(profile), nil)
	}
}

func PostQuizResponse(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuizRequest
		if !bindJSON(c, app, &req) {
			return
		}
		err := service.SaveQuizResponse(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("quiz", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save quiz response")
			return
		}
		HandleCreated(c, app.Logger(), req)
	}
}
