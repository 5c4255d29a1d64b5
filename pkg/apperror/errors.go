package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----
// Rejected before any store access.

func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrUnknownPrediction(prediction string) *AppError {
	return New("VAL_003", fmt.Sprintf("Prediction %q is not an outcome of this market", prediction), http.StatusBadRequest)
}

func ErrUnsupportedMarket(marketType string) *AppError {
	return New("VAL_004", fmt.Sprintf("Unsupported market type %q", marketType), http.StatusBadRequest)
}

// ---- Policy rejections (POL) ----
// Quota Guard and ledger precondition failures. Each carries the specific
// limit or shortfall so the client can react.

func ErrAccountInactive() *AppError {
	return New("POL_001", "Account is not active for betting", http.StatusForbidden)
}

func ErrStakeBelowMinimum(minStake int64) *AppError {
	return New("POL_002", fmt.Sprintf("Amount below the minimum of %d", minStake), http.StatusUnprocessableEntity)
}

func ErrStakeAboveMaximum(maxStake int64) *AppError {
	return New("POL_003", fmt.Sprintf("Amount above the maximum of %d", maxStake), http.StatusUnprocessableEntity)
}

func ErrInsufficientBalance(required, available int64) *AppError {
	return New("POL_004",
		fmt.Sprintf("Insufficient balance: required %d, available %d, shortfall %d", required, available, required-available),
		http.StatusPaymentRequired)
}

func ErrDailyBetLimitExceeded(limit, used int64) *AppError {
	return New("POL_005",
		fmt.Sprintf("Daily betting limit exceeded: limit %d, used %d", limit, used),
		http.StatusUnprocessableEntity)
}

func ErrTooManyPendingBets(maxPending, current int) *AppError {
	return New("POL_006",
		fmt.Sprintf("Maximum %d pending bets allowed, currently %d", maxPending, current),
		http.StatusUnprocessableEntity)
}

func ErrMarketClosed() *AppError {
	return New("POL_007", "Match or market is not open for this bet", http.StatusUnprocessableEntity)
}

func ErrDailyWithdrawLimitExceeded(limit, used int64) *AppError {
	return New("POL_008",
		fmt.Sprintf("Daily withdrawal limit exceeded: limit %d, used %d", limit, used),
		http.StatusUnprocessableEntity)
}

// ---- Concurrency conflicts (CON) ----

// ErrConflict signals that the atomic ledger step lost a concurrent race and
// internal retries were exhausted. The caller may retry.
func ErrConflict(err error) *AppError {
	return Wrap("CON_001", "Concurrent modification, please retry", http.StatusConflict, err)
}

// ---- Lifecycle (LIF) ----
// Illegal transitions out of a terminal bet or transaction status. These are
// caller/logic errors and are never retried.

func ErrAlreadySettled() *AppError {
	return New("LIF_001", "Already settled", http.StatusConflict)
}

func ErrNotCancellable() *AppError {
	return New("LIF_002", "Bet is not cancellable", http.StatusConflict)
}

// ---- Dependencies & system (DEP/SYS) ----

// ErrDependencyUnavailable signals an unreachable store or collaborator.
// Ledger operations fail closed when this is returned.
func ErrDependencyUnavailable(dep string, err error) *AppError {
	return Wrap("DEP_001", fmt.Sprintf("Dependency %s unavailable", dep), http.StatusServiceUnavailable, err)
}

func ErrNotFound(entity string) *AppError {
	return New("SYS_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrForbidden() *AppError {
	return New("SYS_003", "Not allowed", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("SYS_004", "Invalid or expired token", http.StatusUnauthorized)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
