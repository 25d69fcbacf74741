package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	appcustomer "github.com/jackyeh168/laundry_crm/src/internal/application/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// ===========================
// 客戶
// ===========================

type customerRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Wechat string `json:"wechat"`
}

type customerWithRechargeRequest struct {
	customerRequest
	RechargeAmount decimal.Decimal `json:"rechargeAmount"`
}

type customerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Wechat    string          `json:"wechat,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

type balanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Reason  string          `json:"reason"`
}

type balanceResponse struct {
	CustomerID string          `json:"customerId"`
	Balance    decimal.Decimal `json:"balance"`
}

func toCustomerResponse(c *appcustomer.CustomerResult) customerResponse {
	return customerResponse{
		ID:        c.CustomerID,
		Name:      c.Name,
		Phone:     c.Phone,
		Wechat:    c.Wechat,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
	}
}

// ListCustomers GET /api/customers?q=關鍵字
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Customers.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]customerResponse, 0, len(results))
	for _, c := range results {
		resp = append(resp, toCustomerResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// RegisterCustomer POST /api/customers
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.RegisterUC.Execute(appcustomer.RegisterCustomerCommand{
		Name:   req.Name,
		Phone:  req.Phone,
		Wechat: req.Wechat,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(result))
}

// CreateCustomerWithRecharge POST /api/customers/with-recharge
func (h *Handler) CreateCustomerWithRecharge(w http.ResponseWriter, r *http.Request) {
	var req customerWithRechargeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.CreateCustomerWithRecharge(settlement.CreateCustomerWithRechargeCommand{
		Name:           req.Name,
		Phone:          req.Phone,
		Wechat:         req.Wechat,
		RechargeAmount: req.RechargeAmount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := map[string]interface{}{
		"id":      result.CustomerID,
		"name":    result.Name,
		"phone":   result.Phone,
		"balance": result.Balance,
	}
	if result.Recharge != nil {
		resp["recharge"] = toRechargeResponse(*result.Recharge)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetCustomer GET /api/customers/{customerID}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Customers.Get(chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(result))
}

// UpdateCustomer PUT /api/customers/{customerID}
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateUC.Execute(appcustomer.UpdateCustomerCommand{
		CustomerID: chi.URLParam(r, "customerID"),
		Name:       req.Name,
		Phone:      req.Phone,
		Wechat:     req.Wechat,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(result))
}

// DeleteCustomer DELETE /api/customers/{customerID}
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUC.Execute(chi.URLParam(r, "customerID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalance GET /api/customers/{customerID}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	customerID, err := customer.CustomerIDFromString(chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.svc.Ledger.Balance(customerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{CustomerID: result.CustomerID, Balance: result.Balance.Decimal()})
}

// SetBalance PUT /api/customers/{customerID}/balance（管理員改寫）
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	customerID, err := customer.CustomerIDFromString(chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req balanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Ledger.SetBalance(customerID, req.Balance, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{CustomerID: result.CustomerID, Balance: result.Balance.Decimal()})
}

// ListCustomerOrders GET /api/customers/{customerID}/orders
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if _, err := h.svc.Customers.Get(customerID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.listOrders(w, r, settlement.ListOrdersQuery{CustomerID: customerID})
}
