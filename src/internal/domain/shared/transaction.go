package shared

// TransactionContext 事務上下文介面
//
// 行為約定：
// - ctx != nil: 在呼叫者的事務中執行
// - ctx == nil: auto-commit 模式（僅限讀操作）
//
// Repository 方法約束：
//
// ✅ ctx 必須為 non-nil（寫操作）：
//    - Save() / Update() / Delete()
//    - FindByIDForUpdate()（鎖定列，只在事務中有意義）
//
// ✅ ctx 可為 nil（讀操作）：
//    - FindByID() / FindAll() / Scan()
//
// 範例：
//   txManager.InTransaction(func(ctx TransactionContext) error {
//       c, _ := customerRepo.FindByIDForUpdate(ctx, customerID)
//       c.Debit(amount, customer.DebitSourceOrder, orderID)
//       return customerRepo.Update(ctx, c)
//   })
//
// 這是一個標記介面，Infrastructure Layer 負責實作（例如包裝 *gorm.DB）。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 返回錯誤或 panic 時回滾，否則提交。
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}

// KeyedLocker 以鍵（客戶 ID）序列化臨界區
//
// 同一個 key 的 fn 不會並行執行；不同 key 互不影響。
// 無法在時限內取得鎖時返回 ErrLockUnavailable（KindConflict）。
type KeyedLocker interface {
	WithLock(key string, fn func() error) error
}
