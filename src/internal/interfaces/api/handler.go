// Package api 提供洗衣店 CRM 的 JSON HTTP 介面。
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	appcustomer "github.com/jackyeh168/laundry_crm/src/internal/application/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/application/ledger"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// 依賴的應用層介面
// ===========================

// SettlementService 結算引擎
type SettlementService interface {
	CreateOrder(cmd settlement.CreateOrderCommand) (*settlement.CreateOrderResult, error)
	UpdateOrder(cmd settlement.UpdateOrderCommand) (*settlement.OrderResult, error)
	UpdateOrderStatus(cmd settlement.UpdateOrderStatusCommand) (*settlement.OrderResult, error)
	CancelOrder(orderID string) (*settlement.CancelOrderResult, error)
	GetOrder(orderID string) (*settlement.OrderDetailResult, error)
	ListOrders(query settlement.ListOrdersQuery) ([]settlement.OrderResult, error)

	AddClothes(cmd settlement.AddClothesCommand) (*settlement.ClothesResult, error)
	UpdateClothes(cmd settlement.UpdateClothesCommand) (*settlement.ClothesResult, error)
	AdvanceClothesStatus(cmd settlement.AdvanceClothesStatusCommand) (*settlement.ClothesResult, error)
	DeleteClothes(clothesID string) error
	ListClothes(orderID string) ([]settlement.ClothesResult, error)
	ListClothesByStatus(status string) ([]settlement.ClothesResult, error)

	Recharge(cmd settlement.RechargeCommand) (*settlement.RechargeResult, error)
	PayWithPrepaid(cmd settlement.PayWithPrepaidCommand) (*settlement.PaymentResult, error)
	CreateCustomerWithRecharge(cmd settlement.CreateCustomerWithRechargeCommand) (*settlement.CustomerWithRechargeResult, error)
	ListRechargeRecords(customerID string) ([]settlement.RechargeResult, error)
}

// LedgerService 餘額查詢與管理員改寫
type LedgerService interface {
	Balance(customerID customer.CustomerID) (*ledger.BalanceResult, error)
	SetBalance(customerID customer.CustomerID, value decimal.Decimal, reason string) (*ledger.BalanceResult, error)
}

// CustomerQueries 客戶查詢
type CustomerQueries interface {
	Get(customerID string) (*appcustomer.CustomerResult, error)
	List() ([]*appcustomer.CustomerResult, error)
	Search(keyword string) ([]*appcustomer.CustomerResult, error)
}

// StatisticsService 統計
type StatisticsService interface {
	DailyStatistics(date time.Time) (map[string]interface{}, error)
	MonthlyStatistics(year, month int) (map[string]interface{}, error)
}

// Services Handler 的所有依賴
type Services struct {
	Settlement   SettlementService
	Ledger       LedgerService
	RegisterUC   appcustomer.RegisterCustomerUseCase
	UpdateUC     appcustomer.UpdateCustomerUseCase
	DeleteUC     appcustomer.DeleteCustomerUseCase
	Customers    CustomerQueries
	Statistics   StatisticsService
	BusinessZone *time.Location
}

// Handler HTTP 處理器
type Handler struct {
	svc    Services
	logger *zap.Logger
}

// NewHandler 創建 HTTP 處理器
func NewHandler(svc Services, logger *zap.Logger) *Handler {
	if svc.BusinessZone == nil {
		svc.BusinessZone = time.Local
	}
	return &Handler{svc: svc, logger: logger.Named("http")}
}

// ===========================
// 回應輔助函數
// ===========================

type errorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// statusFor 錯誤分類 → HTTP 狀態碼
func statusFor(err error) int {
	switch shared.KindOf(err) {
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindInvalidArgument:
		return http.StatusBadRequest
	case shared.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case shared.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	resp := errorResponse{Code: "INTERNAL", Message: http.StatusText(status)}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && status != http.StatusInternalServerError {
		resp = errorResponse{
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Context: domainErr.Context,
		}
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "REQUEST_BODY_INVALID",
			Message: "請求內容格式錯誤",
		})
		return false
	}
	return true
}
