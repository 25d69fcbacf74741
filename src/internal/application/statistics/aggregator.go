package statistics

import (
	"fmt"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ===========================
// Statistics Aggregator
// ===========================

// 統計結果的欄位名稱
const (
	KeyDailyIncome          = "dailyIncome"
	KeyMonthlyIncome        = "monthlyIncome"
	KeyCashIncome           = "cashIncome"
	KeyPrepaidIncome        = "prepaidIncome"
	KeyTodayOrderCount      = "todayOrderCount"
	KeyUnfinishedOrderCount = "unfinishedOrderCount"
	KeyDate                 = "date"
	KeyYear                 = "year"
	KeyMonth                = "month"
)

// Aggregator 收入與訂單數統計（唯讀投影）
//
// 收入口徑：
// - cashIncome: 當期 CASH 訂單的 totalPrice 總和
// - prepaidIncome: 當期充值記錄的 rechargeAmount 總和（實收現金，不含贈送）
// - 收入 = cashIncome + prepaidIncome；PREPAID 訂單不計入，充值時已計過
//
// 時間窗口以營業時區計算，createdAt 為零值的記錄不落入任何窗口。
type Aggregator struct {
	orders    order.OrderRepository
	recharges recharge.RechargeRecordRepository
	location  *time.Location
	logger    *zap.Logger
}

// NewAggregator 創建統計服務；loc 為 nil 時使用 time.Local
func NewAggregator(
	orders order.OrderRepository,
	recharges recharge.RechargeRecordRepository,
	loc *time.Location,
	logger *zap.Logger,
) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{
		orders:    orders,
		recharges: recharges,
		location:  loc,
		logger:    logger.Named("statistics"),
	}
}

// CashIncome date 當日的現金訂單收入
func (a *Aggregator) CashIncome(date time.Time) (decimal.Decimal, error) {
	return a.cashIncome(DayWindow(date, a.location))
}

// PrepaidIncome date 當日的充值收入
func (a *Aggregator) PrepaidIncome(date time.Time) (decimal.Decimal, error) {
	return a.prepaidIncome(DayWindow(date, a.location))
}

// DailyIncome date 當日收入 = 現金訂單 + 充值
func (a *Aggregator) DailyIncome(date time.Time) (decimal.Decimal, error) {
	split, err := a.incomeSplit(DayWindow(date, a.location))
	if err != nil {
		return decimal.Zero, err
	}
	return split.total(), nil
}

// MonthlyIncome 當月收入
//
// 錯誤：ErrInvalidMonth（month 不在 1..12）
func (a *Aggregator) MonthlyIncome(year, month int) (decimal.Decimal, error) {
	w, err := a.monthWindow(year, month)
	if err != nil {
		return decimal.Zero, err
	}
	split, err := a.incomeSplit(w)
	if err != nil {
		return decimal.Zero, err
	}
	return split.total(), nil
}

// UnfinishedOrderCount 狀態不是 FINISHED 的訂單數（不限時間）
func (a *Aggregator) UnfinishedOrderCount() (int, error) {
	orders, err := a.orders.Scan(nil, func(o *order.Order) bool {
		return !o.IsFinished()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan orders: %w", err)
	}
	return len(orders), nil
}

// TodayOrderCount date 當日建立的訂單數（不限支付方式與狀態）
func (a *Aggregator) TodayOrderCount(date time.Time) (int, error) {
	w := DayWindow(date, a.location)
	skipped := 0
	orders, err := a.orders.Scan(nil, func(o *order.Order) bool {
		if o.CreatedAt().IsZero() {
			skipped++
			return false
		}
		return w.Contains(o.CreatedAt())
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan orders: %w", err)
	}
	a.warnUnparseableOrders(skipped)
	return len(orders), nil
}

// DailyStatistics 當日統計
//
// 鍵：dailyIncome、cashIncome、prepaidIncome、todayOrderCount、unfinishedOrderCount、date
func (a *Aggregator) DailyStatistics(date time.Time) (map[string]interface{}, error) {
	w := DayWindow(date, a.location)

	var (
		split      incomeSplit
		today      int
		unfinished int
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		split, err = a.incomeSplit(w)
		return err
	})
	g.Go(func() error {
		var err error
		today, err = a.TodayOrderCount(date)
		return err
	})
	g.Go(func() error {
		var err error
		unfinished, err = a.UnfinishedOrderCount()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		KeyDailyIncome:          split.total(),
		KeyCashIncome:           split.cash,
		KeyPrepaidIncome:        split.prepaid,
		KeyTodayOrderCount:      today,
		KeyUnfinishedOrderCount: unfinished,
		KeyDate:                 w.Start.Format(time.DateOnly),
	}, nil
}

// MonthlyStatistics 當月統計
//
// 鍵：monthlyIncome、cashIncome、prepaidIncome、year、month
//
// 錯誤：ErrInvalidMonth
func (a *Aggregator) MonthlyStatistics(year, month int) (map[string]interface{}, error) {
	w, err := a.monthWindow(year, month)
	if err != nil {
		return nil, err
	}
	split, err := a.incomeSplit(w)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		KeyMonthlyIncome: split.total(),
		KeyCashIncome:    split.cash,
		KeyPrepaidIncome: split.prepaid,
		KeyYear:          year,
		KeyMonth:         month,
	}, nil
}

// ===========================
// 內部計算
// ===========================

type incomeSplit struct {
	cash    decimal.Decimal
	prepaid decimal.Decimal
}

func (s incomeSplit) total() decimal.Decimal {
	return s.cash.Add(s.prepaid)
}

func (a *Aggregator) incomeSplit(w Window) (incomeSplit, error) {
	var split incomeSplit

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		split.cash, err = a.cashIncome(w)
		return err
	})
	g.Go(func() error {
		var err error
		split.prepaid, err = a.prepaidIncome(w)
		return err
	})
	if err := g.Wait(); err != nil {
		return incomeSplit{}, err
	}
	return split, nil
}

func (a *Aggregator) cashIncome(w Window) (decimal.Decimal, error) {
	skipped := 0
	orders, err := a.orders.Scan(nil, func(o *order.Order) bool {
		if o.PayType() != order.PayTypeCash {
			return false
		}
		if o.CreatedAt().IsZero() {
			skipped++
			return false
		}
		return w.Contains(o.CreatedAt())
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to scan orders: %w", err)
	}
	a.warnUnparseableOrders(skipped)

	sum := shared.Zero()
	for _, o := range orders {
		sum = sum.Add(o.TotalPrice())
	}
	return sum.Decimal(), nil
}

func (a *Aggregator) warnUnparseableOrders(skipped int) {
	if skipped > 0 {
		a.logger.Warn("orders with unparseable create_time excluded", zap.Int("count", skipped))
	}
}

func (a *Aggregator) prepaidIncome(w Window) (decimal.Decimal, error) {
	skipped := 0
	records, err := a.recharges.Scan(nil, func(r *recharge.RechargeRecord) bool {
		if r.CreatedAt().IsZero() {
			skipped++
			return false
		}
		return w.Contains(r.CreatedAt())
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to scan recharge records: %w", err)
	}
	if skipped > 0 {
		a.logger.Warn("recharge records with unparseable create_time excluded", zap.Int("count", skipped))
	}

	sum := shared.Zero()
	for _, r := range records {
		sum = sum.Add(r.RechargeAmount())
	}
	return sum.Decimal(), nil
}

func (a *Aggregator) monthWindow(year, month int) (Window, error) {
	if month < 1 || month > 12 {
		return Window{}, ErrInvalidMonth.WithContext("year", year, "month", month)
	}
	return MonthWindow(year, time.Month(month), a.location), nil
}
