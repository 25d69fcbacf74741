package lock

import "fmt"

// CustomerLockKey 客戶餘額鎖的 Redis 鍵
func CustomerLockKey(customerID string) string {
	return fmt.Sprintf("laundry_crm:lock:customer:%s", customerID)
}
