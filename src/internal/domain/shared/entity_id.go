package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 泛型實體 ID 值對象
//
// 泛型參數 T 是標記類型（marker type），只用於編譯期區分：
// EntityID[CustomerMarker] 與 EntityID[OrderMarker] 是不同類型，不能混用。
//
// 使用範例：
//   type CustomerMarker struct{}
//   type CustomerID = shared.EntityID[CustomerMarker]
//
//   id := shared.NewEntityID[CustomerMarker]()
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID（UUID v4）
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString 從字串解析實體 ID
//
// 參數：
//   s - UUID 字串
//   errTemplate - 解析失敗時返回的錯誤（由各聚合所在的包提供）
//
// 返回：
//   EntityID[T] - 解析成功的實體 ID
//   error - errTemplate，若支援 WithContext 則附帶輸入與解析錯誤
func EntityIDFromString[T any](s string, errTemplate *DomainError) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EntityID[T]{}, errTemplate.WithContext(
			"input", s,
			"parse_error", err.Error(),
		)
	}
	if id == uuid.Nil {
		return EntityID[T]{}, errTemplate.WithContext(
			"input", s,
			"parse_error", "nil uuid",
		)
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個 EntityID 是否相等
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
