package ledger_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/application/ledger"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/events"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/lock"
	"github.com/jackyeh168/laundry_crm/src/internal/infrastructure/persistence"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================
// Ledger Integration Tests (SQLite)
// ===========================

type ledgerEnv struct {
	service   *ledger.Service
	customers customer.CustomerRepository
	txManager shared.TransactionManager
}

func newLedgerEnv(t testing.TB) *ledgerEnv {
	t.Helper()

	db := persistence.NewTestDB(t)
	customers := persistence.NewCustomerRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)
	service := ledger.NewService(
		customers,
		txManager,
		lock.NewKeyedMutex(5*time.Second),
		events.NewZapPublisher(zap.NewNop()),
		zap.NewNop(),
	)
	return &ledgerEnv{service: service, customers: customers, txManager: txManager}
}

func (e *ledgerEnv) seedCustomer(t testing.TB, phone string, balance int64) customer.CustomerID {
	t.Helper()

	p, err := customer.NewPhoneNumber(phone)
	require.NoError(t, err)
	c, err := customer.NewCustomer("張三", p, customer.WechatID{})
	require.NoError(t, err)
	c.Credit(shared.MustMoney(fmt.Sprint(balance)), customer.CreditSourceRecharge, "seed")

	err = e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return e.customers.Save(ctx, c)
	})
	require.NoError(t, err)
	return c.CustomerID()
}

func TestConcurrentDebits_ExactlyOneSucceeds(t *testing.T) {
	// Arrange
	env := newLedgerEnv(t)
	id := env.seedCustomer(t, "13800001111", 100)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)

	// Act
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.Debit(id, decimal.NewFromInt(60), customer.DebitSourceDirectPay, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else {
				failures = append(failures, err)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, 1, successes)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], customer.ErrInsufficientBalance)

	balance, err := env.service.Balance(id)
	require.NoError(t, err)
	assert.Equal(t, "40", balance.Balance.String())
}

func TestCreditThenDebit_PersistsExactDecimal(t *testing.T) {
	// Arrange
	env := newLedgerEnv(t)
	id := env.seedCustomer(t, "13800002222", 0)

	// Act
	_, err := env.service.Credit(id, decimal.RequireFromString("0.1"), customer.CreditSourceRecharge, "r-1")
	require.NoError(t, err)
	_, err = env.service.Credit(id, decimal.RequireFromString("0.2"), customer.CreditSourceRecharge, "r-2")
	require.NoError(t, err)
	result, err := env.service.Debit(id, decimal.RequireFromString("0.3"), customer.DebitSourceDirectPay, "")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Balance.IsZero())

	stored, err := env.customers.FindByID(nil, id)
	require.NoError(t, err)
	assert.True(t, stored.Balance().IsZero())
}

func TestSetBalance_OverwritesStoredBalance(t *testing.T) {
	// Arrange
	env := newLedgerEnv(t)
	id := env.seedCustomer(t, "13800003333", 500)

	// Act
	_, err := env.service.SetBalance(id, decimal.NewFromInt(20), "盤點修正")

	// Assert
	require.NoError(t, err)
	stored, err := env.customers.FindByID(nil, id)
	require.NoError(t, err)
	assert.Equal(t, "20", stored.Balance().String())
}

func TestDebit_UnknownCustomer_NotFound(t *testing.T) {
	env := newLedgerEnv(t)

	_, err := env.service.Debit(customer.NewCustomerID(), decimal.NewFromInt(1), customer.DebitSourceDirectPay, "")

	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

// ===========================
// Property: 餘額永不為負，且等於成功操作的總和
// ===========================

func TestProperty_BalanceNeverNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("ledger balance stays >= 0 and matches the model", prop.ForAll(
		func(ops []int) bool {
			env := newLedgerEnv(t)
			id := env.seedCustomer(t, "13900000000", 0)
			model := decimal.Zero

			for _, op := range ops {
				amount := decimal.NewFromInt(int64(op)).Abs()
				if op >= 0 {
					if _, err := env.service.Credit(id, amount, customer.CreditSourceRecharge, ""); err != nil {
						return false
					}
					model = model.Add(amount)
					continue
				}

				_, err := env.service.Debit(id, amount, customer.DebitSourceDirectPay, "")
				if model.LessThan(amount) {
					if !shared.IsKind(err, shared.KindInsufficientFunds) {
						return false
					}
					continue
				}
				if err != nil {
					return false
				}
				model = model.Sub(amount)
			}

			stored, err := env.customers.FindByID(nil, id)
			if err != nil {
				return false
			}
			return !stored.Balance().Decimal().IsNegative() && stored.Balance().Decimal().Equal(model)
		},
		gen.SliceOf(gen.IntRange(-300, 300)),
	))

	properties.TestingRun(t)
}
