package handler

import (
	"net/http"

	"esports-wagering-platform/internal/adapter/http/dto"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"
	"esports-wagering-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin-only match settlement endpoints.
type AdminHandler struct {
	settlementSvc ports.Settlement
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(settlementSvc ports.Settlement) *AdminHandler {
	return &AdminHandler{settlementSvc: settlementSvc}
}

// SettleMatch handles POST /api/v1/admin/matches/:id/settle.
func (h *AdminHandler) SettleMatch(c *gin.Context) {
	matchID := c.Param("id")

	var req dto.SettleMatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		dto.SanitizeStruct(&req)
	}

	report, err := h.settlementSvc.SettleMatch(c.Request.Context(), matchID, req.Outcome)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReportResponse(report))
}

// VoidMatch handles POST /api/v1/admin/matches/:id/void.
func (h *AdminHandler) VoidMatch(c *gin.Context) {
	matchID := c.Param("id")

	var req dto.VoidMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	report, err := h.settlementSvc.VoidMatch(c.Request.Context(), matchID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReportResponse(report))
}

func toReportResponse(report *domain.SettlementReport) dto.SettlementReportResponse {
	resp := dto.SettlementReportResponse{
		MatchID:       report.MatchID,
		Outcome:       report.Outcome,
		WonCount:      report.WonCount,
		LostCount:     report.LostCount,
		RefundedCount: report.RefundedCount,
		SkippedCount:  report.SkippedCount,
		TotalPayout:   report.TotalPayout,
	}
	if report.LargestPayoutBetID != nil {
		id := report.LargestPayoutBetID.String()
		resp.LargestPayoutBetID = &id
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, dto.SettlementFailure{
			BetID:  f.BetID.String(),
			Reason: f.Reason,
		})
	}
	return resp
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
