package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/shopspring/decimal"
)

// ===========================
// 訂單與衣物
// ===========================

type clothesRequest struct {
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	DamageRemark string          `json:"damageRemark"`
	DamageImage  string          `json:"damageImage"`
}

func (c clothesRequest) toInput() settlement.ClothesInput {
	return settlement.ClothesInput{
		Type:         c.Type,
		Price:        c.Price,
		DamageRemark: c.DamageRemark,
		DamageImage:  c.DamageImage,
	}
}

type createOrderRequest struct {
	CustomerID   string           `json:"customerId"`
	OrderNo      string           `json:"orderNo"`
	TotalPrice   decimal.Decimal  `json:"totalPrice"`
	Prepaid      decimal.Decimal  `json:"prepaid"`
	PayType      string           `json:"payType"`
	Status       string           `json:"status"`
	Urgent       bool             `json:"urgent"`
	ExpectedTime *time.Time       `json:"expectedTime"`
	Clothes      []clothesRequest `json:"clothes"`
}

type updateOrderRequest struct {
	OrderNo      string          `json:"orderNo"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Prepaid      decimal.Decimal `json:"prepaid"`
	Urgent       bool            `json:"urgent"`
	ExpectedTime *time.Time      `json:"expectedTime"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	OrderNo      string          `json:"orderNo"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Prepaid      decimal.Decimal `json:"prepaid"`
	PayType      string          `json:"payType"`
	Status       string          `json:"status"`
	Urgent       bool            `json:"urgent"`
	ExpectedTime *time.Time      `json:"expectedTime,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type clothesResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"orderId"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	DamageRemark string          `json:"damageRemark,omitempty"`
	DamageImage  string          `json:"damageImage,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func toOrderResponse(o settlement.OrderResult) orderResponse {
	return orderResponse{
		ID:           o.OrderID,
		CustomerID:   o.CustomerID,
		OrderNo:      o.OrderNo,
		TotalPrice:   o.TotalPrice,
		Prepaid:      o.Prepaid,
		PayType:      o.PayType,
		Status:       o.Status,
		Urgent:       o.Urgent,
		ExpectedTime: o.ExpectedTime,
		CreatedAt:    o.CreatedAt,
	}
}

func toClothesResponse(c settlement.ClothesResult) clothesResponse {
	return clothesResponse{
		ID:           c.ClothesID,
		OrderID:      c.OrderID,
		Type:         c.Type,
		Price:        c.Price,
		DamageRemark: c.DamageRemark,
		DamageImage:  c.DamageImage,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}

func toClothesResponses(items []settlement.ClothesResult) []clothesResponse {
	resp := make([]clothesResponse, 0, len(items))
	for _, c := range items {
		resp = append(resp, toClothesResponse(c))
	}
	return resp
}

// CreateOrder POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	clothes := make([]settlement.ClothesInput, 0, len(req.Clothes))
	for _, c := range req.Clothes {
		clothes = append(clothes, c.toInput())
	}

	result, err := h.svc.Settlement.CreateOrder(settlement.CreateOrderCommand{
		CustomerID:   req.CustomerID,
		OrderNo:      req.OrderNo,
		TotalPrice:   req.TotalPrice,
		Prepaid:      req.Prepaid,
		PayType:      req.PayType,
		Status:       req.Status,
		Urgent:       req.Urgent,
		ExpectedTime: req.ExpectedTime,
		Clothes:      clothes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":   toOrderResponse(result.Order),
		"clothes": toClothesResponses(result.Clothes),
		"balance": result.Balance,
	})
}

// ListOrders GET /api/orders?customerId=&status=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.listOrders(w, r, settlement.ListOrdersQuery{
		CustomerID: q.Get("customerId"),
		Status:     q.Get("status"),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, query settlement.ListOrdersQuery) {
	orders, err := h.svc.Settlement.ListOrders(query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetOrder GET /api/orders/{orderID}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Settlement.GetOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":   toOrderResponse(result.Order),
		"clothes": toClothesResponses(result.Clothes),
	})
}

// UpdateOrder PUT /api/orders/{orderID}
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.UpdateOrder(settlement.UpdateOrderCommand{
		OrderID:      chi.URLParam(r, "orderID"),
		OrderNo:      req.OrderNo,
		TotalPrice:   req.TotalPrice,
		Prepaid:      req.Prepaid,
		Urgent:       req.Urgent,
		ExpectedTime: req.ExpectedTime,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*result))
}

// UpdateOrderStatus PUT /api/orders/{orderID}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.UpdateOrderStatus(settlement.UpdateOrderStatusCommand{
		OrderID: chi.URLParam(r, "orderID"),
		Status:  req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*result))
}

// CancelOrder DELETE /api/orders/{orderID}
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Settlement.CancelOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orderId":        result.OrderID,
		"customerId":     result.CustomerID,
		"refunded":       result.Refunded,
		"clothesRemoved": result.ClothesRemoved,
	})
}

// ListClothes GET /api/orders/{orderID}/clothes
func (h *Handler) ListClothes(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Settlement.ListClothes(chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClothesResponses(items))
}

// ListClothesByStatus GET /api/clothes/status/{status}
func (h *Handler) ListClothesByStatus(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Settlement.ListClothesByStatus(chi.URLParam(r, "status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClothesResponses(items))
}

// AddClothes POST /api/orders/{orderID}/clothes
func (h *Handler) AddClothes(w http.ResponseWriter, r *http.Request) {
	var req clothesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.AddClothes(settlement.AddClothesCommand{
		OrderID:      chi.URLParam(r, "orderID"),
		ClothesInput: req.toInput(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClothesResponse(*result))
}

// UpdateClothes PUT /api/clothes/{clothesID}
func (h *Handler) UpdateClothes(w http.ResponseWriter, r *http.Request) {
	var req clothesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.UpdateClothes(settlement.UpdateClothesCommand{
		ClothesID:    chi.URLParam(r, "clothesID"),
		ClothesInput: req.toInput(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClothesResponse(*result))
}

// AdvanceClothesStatus PUT /api/clothes/{clothesID}/status（status 為空時前進一步）
func (h *Handler) AdvanceClothesStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Settlement.AdvanceClothesStatus(settlement.AdvanceClothesStatusCommand{
		ClothesID: chi.URLParam(r, "clothesID"),
		Status:    req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClothesResponse(*result))
}

// DeleteClothes DELETE /api/clothes/{clothesID}
func (h *Handler) DeleteClothes(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Settlement.DeleteClothes(chi.URLParam(r, "clothesID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
