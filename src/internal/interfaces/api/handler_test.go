package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcustomer "github.com/jackyeh168/laundry_crm/src/internal/application/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/application/ledger"
	"github.com/jackyeh168/laundry_crm/src/internal/application/settlement"
	"github.com/jackyeh168/laundry_crm/src/internal/application/statistics"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/events"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/lock"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================
// 測試環境（真實 SQLite 接線）
// ===========================

var testZone = time.FixedZone("CST", 8*60*60)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	db := persistence.NewTestDB(t)

	customers := persistence.NewCustomerRepository(db)
	orders := persistence.NewOrderRepository(db, persistence.WithLegacyLocation(testZone))
	clothes := persistence.NewClothesRepository(db, persistence.WithLegacyLocation(testZone))
	recharges := persistence.NewRechargeRecordRepository(db, persistence.WithLegacyLocation(testZone))
	txManager := persistence.NewGORMTransactionManager(db)
	locker := lock.NewKeyedMutex(5 * time.Second)
	publisher := events.NewZapPublisher(logger)

	ledgerService := ledger.NewService(customers, txManager, locker, publisher, logger)

	h := NewHandler(Services{
		Settlement:   settlement.NewEngine(customers, orders, clothes, recharges, ledgerService, txManager, logger),
		Ledger:       ledgerService,
		RegisterUC:   appcustomer.NewRegisterCustomerUseCase(customers, txManager, publisher),
		UpdateUC:     appcustomer.NewUpdateCustomerUseCase(customers, txManager, locker),
		DeleteUC:     appcustomer.NewDeleteCustomerUseCase(customers, orders, recharges, txManager, locker),
		Customers:    appcustomer.NewQueryService(customers),
		Statistics:   statistics.NewAggregator(orders, recharges, testZone, logger),
		BusinessZone: testZone,
	}, logger)

	return h.SetupRouter()
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func openCard(t *testing.T, srv http.Handler, phone string, amount int) string {
	t.Helper()

	rec, body := doJSON(t, srv, http.MethodPost, "/api/customers/with-recharge", map[string]interface{}{
		"name":           "王小明",
		"phone":          phone,
		"rechargeAmount": amount,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["id"].(string)
}

// ===========================
// 端到端流程
// ===========================

func TestAPI_CreateCustomerWithRecharge_ReturnsGift(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/customers/with-recharge", map[string]interface{}{
		"name":           "王小明",
		"phone":          "13812345678",
		"rechargeAmount": 300,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "360", body["balance"])
	recharge := body["recharge"].(map[string]interface{})
	assert.Equal(t, "300", recharge["rechargeAmount"])
	assert.Equal(t, "60", recharge["giftAmount"])
}

func TestAPI_PrepaidOrder_DebitsBalance(t *testing.T) {
	// Arrange
	srv := newTestServer(t)
	customerID := openCard(t, srv, "13812345678", 200)

	// Act: 餘額 240，400 的儲值訂單應被拒絕
	rec, body := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerId": customerID,
		"orderNo":    "A-001",
		"totalPrice": 400,
		"payType":    "PREPAID",
	})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, string(customer.ErrCodeInsufficientBalance), body["code"])

	// Act: 100 的儲值訂單成功
	rec, body = doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerId": customerID,
		"orderNo":    "A-002",
		"totalPrice": 100,
		"payType":    "PREPAID",
		"clothes": []map[string]interface{}{
			{"type": "大衣", "price": 60},
			{"type": "襯衫", "price": 40},
		},
	})

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "140", body["balance"])
	assert.Len(t, body["clothes"], 2)

	rec, body = doJSON(t, srv, http.MethodGet, "/api/customers/"+customerID+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "140", body["balance"])
}

func TestAPI_CancelOrder_RefundsPrepaid(t *testing.T) {
	srv := newTestServer(t)
	customerID := openCard(t, srv, "13812345678", 100)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerId": customerID,
		"orderNo":    "A-001",
		"totalPrice": 50,
		"payType":    "PREPAID",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderID := body["order"].(map[string]interface{})["id"].(string)

	rec, body = doJSON(t, srv, http.MethodDelete, "/api/orders/"+orderID, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "50", body["refunded"])

	_, body = doJSON(t, srv, http.MethodGet, "/api/customers/"+customerID+"/balance", nil)
	assert.Equal(t, "110", body["balance"])

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_SetBalance_OverwritesBalance(t *testing.T) {
	srv := newTestServer(t)
	customerID := openCard(t, srv, "13812345678", 100)

	rec, body := doJSON(t, srv, http.MethodPut, "/api/customers/"+customerID+"/balance", map[string]interface{}{
		"balance": "12.5",
		"reason":  "盤點修正",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "12.5", body["balance"])
}

func TestAPI_DailyStatistics(t *testing.T) {
	srv := newTestServer(t)
	openCard(t, srv, "13812345678", 200)

	today := time.Now().In(testZone).Format(time.DateOnly)
	rec, body := doJSON(t, srv, http.MethodGet, "/api/statistics/daily?date="+today, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, today, body[statistics.KeyDate])
	assert.Equal(t, "200", body[statistics.KeyPrepaidIncome])
	assert.Equal(t, "200", body[statistics.KeyDailyIncome])
}

func TestAPI_ListClothesByStatus(t *testing.T) {
	// Arrange：一張訂單兩件衣物，其中一件已洗
	srv := newTestServer(t)
	customerID := openCard(t, srv, "13812345678", 200)
	rec, body := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerId": customerID,
		"orderNo":    "A-001",
		"totalPrice": 100,
		"payType":    "CASH",
		"clothes": []map[string]interface{}{
			{"type": "大衣", "price": 60},
			{"type": "襯衫", "price": 40},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	washedID := body["clothes"].([]interface{})[0].(map[string]interface{})["id"].(string)
	rec, _ = doJSON(t, srv, http.MethodPut, "/api/clothes/"+washedID+"/status", map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Act
	rec, _ = doJSON(t, srv, http.MethodGet, "/api/clothes/status/washed", nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, washedID, items[0]["id"])
	assert.Equal(t, "WASHED", items[0]["status"])
}

// ===========================
// 錯誤處理
// ===========================

func TestAPI_ErrorResponses(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			method:     http.MethodPost,
			path:       "/api/prepaid/recharge",
			body:       "not-an-object",
			wantStatus: http.StatusBadRequest,
			wantCode:   "REQUEST_BODY_INVALID",
		},
		{
			name:       "invalid customer id",
			method:     http.MethodGet,
			path:       "/api/customers/not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(customer.ErrCodeInvalidCustomerID),
		},
		{
			name:       "unknown customer",
			method:     http.MethodGet,
			path:       "/api/customers/" + customer.NewCustomerID().String() + "/balance",
			wantStatus: http.StatusNotFound,
			wantCode:   string(customer.ErrCodeCustomerNotFound),
		},
		{
			name:       "unknown order",
			method:     http.MethodGet,
			path:       "/api/orders/" + order.NewOrderID().String(),
			wantStatus: http.StatusNotFound,
			wantCode:   string(order.ErrCodeOrderNotFound),
		},
		{
			name:       "unknown clothes status",
			method:     http.MethodGet,
			path:       "/api/clothes/status/DRYING",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(order.ErrCodeInvalidClothesStatus),
		},
		{
			name:       "bad statistics date",
			method:     http.MethodGet,
			path:       "/api/statistics/daily?date=2026/03/15",
			wantStatus: http.StatusBadRequest,
			wantCode:   "DATE_INVALID",
		},
		{
			name:       "bad statistics month",
			method:     http.MethodGet,
			path:       "/api/statistics/monthly?year=2026&month=13",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(statistics.ErrCodeInvalidMonth),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, srv, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestAPI_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{customer.ErrCustomerNotFound, http.StatusNotFound},
		{customer.ErrInvalidCustomerName, http.StatusBadRequest},
		{customer.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{shared.ErrConcurrentWrite, http.StatusConflict},
		{shared.ErrLockUnavailable, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
