package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PageKey: uygulamadaki sayfalar. Yetki haritası sadece bu sabit
// listedeki sayfaları kabul eder (serbest JSON blob yok).
type PageKey string

const (
	PageDashboard    PageKey = "dashboard"
	PageCategories   PageKey = "categories"
	PageProducts     PageKey = "products"
	PageWarehouses   PageKey = "warehouses"
	PageReceipts     PageKey = "receipts"
	PageIssues       PageKey = "issues"
	PageTransfers    PageKey = "transfers"
	PageStock        PageKey = "stock"
	PageDebts        PageKey = "debts"
	PageUsers        PageKey = "users"
	PageActivityLogs PageKey = "activity_logs"
)

// ActionKey: sayfa içindeki buton/işlem yetkileri
type ActionKey string

const (
	ActionCreate   ActionKey = "create"
	ActionUpdate   ActionKey = "update"
	ActionDelete   ActionKey = "delete"
	ActionComplete ActionKey = "complete"
	ActionImport   ActionKey = "import"
	ActionExport   ActionKey = "export"
	ActionCollect  ActionKey = "collect"
)

func KnownPages() []PageKey {
	return []PageKey{
		PageDashboard, PageCategories, PageProducts, PageWarehouses,
		PageReceipts, PageIssues, PageTransfers, PageStock,
		PageDebts, PageUsers, PageActivityLogs,
	}
}

// PagePermission: bir sayfa için erişim + izinli butonlar
type PagePermission struct {
	Allowed bool        `json:"allowed"`
	Buttons []ActionKey `json:"buttons"`
}

// PermissionMap: sayfa -> yetki kaydı. Veritabanında jsonb olarak tutulur.
type PermissionMap map[PageKey]PagePermission

func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		m = PermissionMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *PermissionMap) Scan(value any) error {
	if value == nil {
		*m = PermissionMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("PermissionMap için beklenmeyen tip: %T", value)
	}
	if len(data) == 0 {
		*m = PermissionMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Validate: bilinmeyen sayfa anahtarlarını sınırda reddet
func (m PermissionMap) Validate() error {
	known := map[PageKey]bool{}
	for _, p := range KnownPages() {
		known[p] = true
	}
	for page := range m {
		if !known[page] {
			return fmt.Errorf("bilinmeyen sayfa anahtarı: %s", page)
		}
	}
	return nil
}

// Allows: sayfa erişimi var mı ve istenen butonların tamamı izinli mi?
func (m PermissionMap) Allows(page PageKey, buttons ...ActionKey) bool {
	perm, ok := m[page]
	if !ok || !perm.Allowed {
		return false
	}
	for _, b := range buttons {
		found := false
		for _, have := range perm.Buttons {
			if have == b {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
