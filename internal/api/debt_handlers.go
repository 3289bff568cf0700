package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/metrics"
	"github.com/yourname/shammah/internal/service"
)

// GetDebts lists debts with the aggregate totals in meta.
func GetDebts(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		totals := service.SummarizeDebts(profile.Debts)
		meta := map[string]any{
			"original": totals.Original,
			"balance":  totals.Balance,
			"paid":     totals.Paid,
		}
		HandleSuccess(c, app.Logger(), profile.Debts, meta)
	}
}

func PostDebt(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.DebtRequest
		if !bindJSON(c, app, &req) {
			return
		}
		debt, err := service.AddDebt(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), &req)
		metrics.RecordMutation("debt", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to add debt")
			return
		}
		HandleCreated(c, app.Logger(), debt)
	}
}

func PutDebt(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.DebtRequest
		if !bindJSON(c, app, &req) {
			return
		}
		debt, err := service.UpdateDebt(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("debt", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update debt")
			return
		}
		HandleSuccess(c, app.Logger(), debt, nil)
	}
}

func DeleteDebt(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		err := service.DeleteDebt(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id)
		metrics.RecordMutation("debt", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete debt")
			return
		}
		HandleSuccess(c, app.Logger(), true, nil)
	}
}

func PostDebtPayment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.PaymentRequest
		if !bindJSON(c, app, &req) {
			return
		}
		payment, err := service.AddDebtPayment(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("payment", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to record payment")
			return
		}
		HandleCreated(c, app.Logger(), payment)
	}
}

func PutDebtStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		var req service.DebtStatusRequest
		if !bindJSON(c, app, &req) {
			return
		}
		debt, err := service.UpdateDebtStatus(c.Request.Context(), app.ProfileRepo(), auth.CurrentUser(c), id, &req)
		metrics.RecordMutation("debt", err)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update debt status")
			return
		}
		HandleSuccess(c, app.Logger(), debt, nil)
	}
}

func GetDebtHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, app)
		if !ok {
			return
		}
		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), auth.CurrentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No profile for user")
			return
		}
		debt, ok := profile.Debt(id)
		if !ok {
			HandleServiceError(c, app.Logger(), fmt.Errorf("debt %d %w", id, internal.ErrNotFound), "Debt not found")
			return
		}
		meta := map[string]any{
			"progress":        service.DebtProgress(debt),
			"current_balance": service.CurrentBalance(debt),
		}
		HandleSuccess(c, app.Logger(), service.BalanceHistory(debt), meta)
	}
}
