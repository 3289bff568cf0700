package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
)

// NewRouter wires every endpoint. Health and metrics are unauthenticated; the
// rest live under /api behind the auth provider.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(app.Logger()), metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", auth.AuthMiddleware(provider))

	api.POST("/profile", PostProfile(app))
	api.GET("/profile", GetProfile(app))
	api.PUT("/profile", PutProfile(app))
	api.GET("/profile/points", GetPoints(app))
	api.GET("/profile/onboarding", GetOnboarding(app))
	api.POST("/profile/onboarding/complete", PostCompleteOnboarding(app))
	api.GET("/profile/usage-duration", GetUsageDuration(app))
	api.PUT("/profile/usage-duration", PutUsageDuration(app))
	api.GET("/overview", GetOverview(app))
	api.POST("/quiz", PostQuizResponse(app))

	api.POST("/journal", PostJournalEntry(app))
	api.GET("/journal", GetJournalEntries(app))
	api.POST("/mindfulness", PostMindfulness(app))
	api.GET("/mindfulness", GetMindfulness(app))
	api.POST("/photos", PostPhoto(app))
	api.GET("/photos", GetPhotos(app))
	api.GET("/photos/baseline", GetBaselinePhoto(app))
	api.GET("/photos/followup", GetFollowupPhoto(app))

	meds := api.Group("/medications")
	meds.GET("", GetMedications(app))
	meds.POST("", PostMedication(app))
	meds.PUT("/:id", PutMedication(app))
	meds.DELETE("/:id", DeleteMedication(app))
	meds.POST("/:id/adherence", PostAdherence(app))

	debts := api.Group("/debts")
	debts.GET("", GetDebts(app))
	debts.POST("", PostDebt(app))
	debts.PUT("/:id", PutDebt(app))
	debts.DELETE("/:id", DeleteDebt(app))
	debts.POST("/:id/payments", PostDebtPayment(app))
	debts.PUT("/:id/status", PutDebtStatus(app))
	debts.GET("/:id/history", GetDebtHistory(app))

	api.POST("/rewards", PostReward(app))
	api.POST("/rewards/activity", PostActivityReward(app))
	api.GET("/rewards", GetRewards(app))
	api.GET("/badges", GetBadges(app))
	api.GET("/pillars", GetPillars(app))
	api.PUT("/pillars/:name", PutPillar(app))

	res := api.Group("/resources")
	res.GET("", GetResources(app))
	res.GET("/:id", GetResource(app))
	res.POST("", PostResource(app))
	res.PUT("/:id", PutResource(app))
	res.DELETE("/:id", DeleteResource(app))

	return r
}
