package handler

import (
	"strconv"
	"time"

	"esports-wagering-platform/internal/adapter/http/dto"
	"esports-wagering-platform/internal/adapter/http/middleware"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"
	"esports-wagering-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BetHandler handles bet lifecycle endpoints.
type BetHandler struct {
	ledgerSvc    ports.Ledger
	reportingSvc ports.Reporting
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(ledgerSvc ports.Ledger, reportingSvc ports.Reporting) *BetHandler {
	return &BetHandler{
		ledgerSvc:    ledgerSvc,
		reportingSvc: reportingSvc,
	}
}

// PlaceBet handles POST /api/v1/bets.
func (h *BetHandler) PlaceBet(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	betClass := domain.BetClass(req.BetClass)
	if betClass == "" {
		betClass = domain.BetClassPreMatch
	}
	marketType := domain.MarketType(req.MarketType)
	if marketType == "" {
		marketType = domain.MarketMatchWinner
	}

	bet, err := h.ledgerSvc.PlaceBet(c.Request.Context(), ports.PlaceBetRequest{
		AccountID:  accountID,
		MatchID:    req.MatchID,
		Amount:     req.Amount,
		Prediction: req.Prediction,
		BetClass:   betClass,
		MarketType: marketType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBetResponse(bet))
}

// ListBets handles GET /api/v1/bets.
func (h *BetHandler) ListBets(c *gin.Context) {
	h.listBets(c, false)
}

// History handles GET /api/v1/bets/history — terminal bets only.
func (h *BetHandler) History(c *gin.Context) {
	h.listBets(c, true)
}

func (h *BetHandler) listBets(c *gin.Context, terminalOnly bool) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	params := ports.BetListParams{
		AccountID:    accountID,
		TerminalOnly: terminalOnly,
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 20),
	}
	if s := c.Query("status"); s != "" {
		status := domain.BetStatus(s)
		params.Status = &status
	}

	bets, total, err := h.reportingSvc.ListBets(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.BetResponse, 0, len(bets))
	for i := range bets {
		items = append(items, toBetResponse(&bets[i]))
	}
	response.OK(c, dto.BetListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	})
}

// Stats handles GET /api/v1/bets/stats.
func (h *BetHandler) Stats(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	stats, err := h.reportingSvc.BetStats(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BetStatsResponse{
		TotalBets:     stats.TotalBets,
		TotalStaked:   stats.TotalStaked,
		TotalWinnings: stats.TotalWinnings,
		WonBets:       stats.WonBets,
		WinRate:       stats.WinRate,
		ProfitLoss:    stats.ProfitLoss,
	})
}

// GetBet handles GET /api/v1/bets/:id.
func (h *BetHandler) GetBet(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid bet id"))
		return
	}

	bet, err := h.reportingSvc.GetBet(c.Request.Context(), betID, accountID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBetResponse(bet))
}

// CancelBet handles POST /api/v1/bets/:id/cancel.
func (h *BetHandler) CancelBet(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid bet id"))
		return
	}

	var req dto.CancelBetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		dto.SanitizeStruct(&req)
	}

	bet, err := h.ledgerSvc.CancelBet(c.Request.Context(), betID, accountID, middleware.IsAdmin(c), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBetResponse(bet))
}

func toBetResponse(bet *domain.Bet) dto.BetResponse {
	resp := dto.BetResponse{
		ID:               bet.ID.String(),
		MatchID:          bet.MatchID,
		Amount:           bet.Amount,
		Odds:             bet.Odds,
		Prediction:       bet.Prediction,
		PotentialWinning: bet.PotentialWinning,
		WinningAmount:    bet.WinningAmount,
		Status:           string(bet.Status),
		BetClass:         string(bet.BetClass),
		MarketType:       string(bet.MarketType),
		CreatedAt:        bet.CreatedAt.Format(time.RFC3339),
	}
	if bet.SettledAt != nil {
		s := bet.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &s
	}
	return resp
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
