package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/shopspring/decimal"
)

// ===========================
// 儲值
// ===========================

type amountRequest struct {
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
}

type rechargeResponse struct {
	ID             string           `json:"id"`
	CustomerID     string           `json:"customerId"`
	RechargeAmount decimal.Decimal  `json:"rechargeAmount"`
	GiftAmount     decimal.Decimal  `json:"giftAmount"`
	Balance        *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func toRechargeResponse(r settlement.RechargeResult) rechargeResponse {
	return rechargeResponse{
		ID:             r.RechargeID,
		CustomerID:     r.CustomerID,
		RechargeAmount: r.RechargeAmount,
		GiftAmount:     r.GiftAmount,
		CreatedAt:      r.CreatedAt,
	}
}

// Recharge POST /api/prepaid/recharge
func (h *Handler) Recharge(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.Recharge(settlement.RechargeCommand{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := toRechargeResponse(*result)
	resp.Balance = &result.Balance
	writeJSON(w, http.StatusCreated, resp)
}

// PayWithPrepaid POST /api/prepaid/pay
func (h *Handler) PayWithPrepaid(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.PayWithPrepaid(settlement.PayWithPrepaidCommand{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"customerId": result.CustomerID,
		"amount":     result.Amount,
		"balance":    result.Balance,
	})
}

// ListRechargeRecords GET /api/prepaid/recharge-records/{customerID}
func (h *Handler) ListRechargeRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Settlement.ListRechargeRecords(chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]rechargeResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRechargeResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}
