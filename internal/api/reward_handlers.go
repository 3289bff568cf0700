package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

type activityRewardRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Reflection  string `json:"reflection"`
}

func PostReward(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RewardRequest
		if !bindJSON(c, app, &req) {
			return
		}
		reward, err := service.ManageRewards(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("reward", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to record reward")
			return
		}
		metrics.RecordPoints(req.Category, reward.Points)
		HandleCreated(c, app.Logger(), reward)
	}
}

// PostActivityReward scores a completed activity server-side and records the reward.
func PostActivityReward(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body activityRewardRequest
		if !bindJSON(c, app, &body) {
			return
		}
		score := service.ScoreActivity(body.Reflection)
		req := service.RewardRequest{
			Category:        body.Category,
			ActivityScore:   score.Activity,
			ReflectionScore: score.Reflection,
			CategoryScore:   score.Category,
			Description:     body.Description,
		}
		reward, err := service.ManageRewards(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("reward", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to record reward")
			return
		}
		metrics.RecordPoints(req.Category, reward.Points)
		HandleCreated(c, app.Logger(), reward)
	}
}

func GetRewards(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		meta := map[string]any{
			"points": profile.Points,
			"tiers":  service.UnlockedTiers(profile.Points),
		}
		HandleSuccess(c, app.Logger(), profile.Rewards, meta)
	}
}

func GetBadges(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		completion := make(map[string]float64, len(profile.Badges))
		for _, b := range profile.Badges {
			completion[b.Name] = service.BadgeCompletion(b, profile.Points)
		}
		HandleSuccess(c, app.Logger(), profile.Badges, map[string]any{"completion": completion})
	}
}

func GetPillars(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		meta := map[string]any{"overall": service.OverallWellness(profile.WellnessPillars)}
		HandleSuccess(c, app.Logger(), profile.WellnessPillars, meta)
	}
}

// PutPillar sets one pillar's progress. The path accepts the pillar id or its display name.
func PutPillar(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PillarRequest
		if !bindJSON(c, app, &req) {
			return
		}
		req.Pillar = strings.TrimSpace(c.Param("name"))
		pillar, err := service.UpdatePillar(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("pillar", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update pillar")
			return
		}
		HandleSuccess(c, app.Logger(), pillar, nil)
	}
}
