package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/report"
	"github.com/rustyeddy/lotsize/risk"
	"go.uber.org/zap"
)

type CalculateResponse struct {
	Pair            string          `json:"pair"`
	AccountCurrency string          `json:"account_currency"`
	LotSize         float64         `json:"lot_size"`
	Units           float64         `json:"units"`
	MoneyRisk       float64         `json:"money_risk"`
	PotentialProfit float64         `json:"potential_profit"`
	PotentialLoss   float64         `json:"potential_loss"`
	RiskPercent     float64         `json:"risk_percent"`
	RewardRisk      risk.RewardRisk `json:"reward_risk"`
	PipValuePerLot  float64         `json:"pip_value_per_lot"`
	RatesAsOf       time.Time       `json:"rates_as_of"`
	Stale           bool            `json:"stale"`
	Formatted       report.Summary  `json:"formatted"`
	JournalID       string          `json:"journal_id,omitempty"`
}

type RatesResponse struct {
	AsOf  time.Time          `json:"as_of"`
	Stale bool               `json:"stale"`
	Rates map[string]float64 `json:"rates"`
}

// Calculate handles POST /v1/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, err, http.StatusBadRequest, "malformed request body")
		return
	}

	in, err := req.Inputs()
	if err != nil {
		h.handleEngineError(c, err)
		return
	}

	res, err := h.sizer.Calculate(in)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}

	resp := CalculateResponse{
		Pair:            in.Pair.Symbol,
		AccountCurrency: in.AccountCurrency.String(),
		LotSize:         res.LotSize,
		Units:           res.Units,
		MoneyRisk:       res.MoneyRisk,
		PotentialProfit: res.PotentialProfit,
		PotentialLoss:   res.PotentialLoss,
		RiskPercent:     res.RiskPct,
		RewardRisk:      res.RewardRisk,
		PipValuePerLot:  res.PipValuePerLot,
		RatesAsOf:       res.RatesAsOf,
		Stale:           h.stale(res.RatesAsOf),
		Formatted:       report.Summarize(res, in.AccountCurrency),
	}

	if h.journal != nil {
		entry := journal.NewEntry(in, res, h.now())
		if err := h.journal.Record(entry); err != nil {
			// the calculation stands even if history cannot be written
			h.logger.Warn("journal record failed", zap.String("id", entry.ID), zap.Error(err))
		} else {
			resp.JournalID = entry.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Rates handles GET /v1/rates
func (h *Handler) Rates(c *gin.Context) {
	tbl := h.rates.Snapshot()
	c.JSON(http.StatusOK, RatesResponse{
		AsOf:  tbl.AsOf,
		Stale: h.stale(tbl.AsOf),
		Rates: tbl.Map(),
	})
}

// PipValue handles GET /v1/pip-value?pair=EURUSD&currency=USD&lots=1
func (h *Handler) PipValue(c *gin.Context) {
	pair, err := market.ParsePair(c.Query("pair"))
	if err != nil {
		h.handleEngineError(c, &risk.ValidationError{Field: "pair", Msg: err.Error()})
		return
	}
	cur, err := parseCurrency("currency", c.DefaultQuery("currency", "USD"))
	if err != nil {
		h.handleEngineError(c, err)
		return
	}
	lots, err := parsePositive("lots", c.Query("lots"), 1)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}

	v, err := h.sizer.PipValue(pair, cur, lots)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pair":      pair.Symbol,
		"currency":  cur,
		"lots":      lots,
		"pip_value": v,
		"formatted": report.Money(v, cur),
	})
}

// Convert handles GET /v1/convert?amount=100&from=EUR&to=JPY
func (h *Handler) Convert(c *gin.Context) {
	amount, err := parsePositive("amount", c.Query("amount"), 1)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}
	from, err := parseCurrency("from", c.Query("from"))
	if err != nil {
		h.handleEngineError(c, err)
		return
	}
	to, err := parseCurrency("to", c.Query("to"))
	if err != nil {
		h.handleEngineError(c, err)
		return
	}

	v, err := h.sizer.Convert(amount, from, to)
	if err != nil {
		h.handleEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount":    amount,
		"from":      from,
		"to":        to,
		"result":    v,
		"formatted": report.Money(v, to),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

func (h *Handler) stale(asOf time.Time) bool {
	return market.StaleAt(asOf, h.staleAfter, h.now())
}

// handleEngineError maps typed engine failures onto status codes
func (h *Handler) handleEngineError(c *gin.Context, err error) {
	var ve *risk.ValidationError
	switch {
	case errors.As(err, &ve):
		h.handleError(c, err, http.StatusBadRequest, err.Error())
	case errors.Is(err, market.ErrConversionGap), errors.Is(err, risk.ErrNotFinite):
		h.handleError(c, err, http.StatusUnprocessableEntity, err.Error())
	default:
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
	}
}

// handleError logs the error and sends appropriate HTTP response
func (h *Handler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID := c.GetString(RequestIDContextKey)
	if requestID == "" {
		requestID = "unknown"
	}

	h.logger.Warn("API error",
		zap.String("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestID,
	})
}
