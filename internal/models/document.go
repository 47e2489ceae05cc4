package models

// DocumentStatus: stok belgelerinin durumu. Stok miktarları sadece
// "completed" durumuna geçişte değişir.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusCompleted DocumentStatus = "completed"
)

func (s DocumentStatus) Valid() bool {
	return s == StatusDraft || s == StatusCompleted
}
