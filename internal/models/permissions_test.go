package models

import "testing"

func TestPermissionMapValidate(t *testing.T) {
	valid := PermissionMap{
		PageProducts: {Allowed: true, Buttons: []ActionKey{ActionCreate}},
		PageStock:    {Allowed: true},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("bilinen sayfalar reddedilmemeli: %v", err)
	}

	invalid := PermissionMap{
		PageKey("kasa"): {Allowed: true},
	}
	if err := invalid.Validate(); err == nil {
		t.Error("bilinmeyen sayfa anahtarı reddedilmeli")
	}
}

func TestPermissionMapAllows(t *testing.T) {
	m := PermissionMap{
		PageReceipts: {Allowed: true, Buttons: []ActionKey{ActionCreate, ActionComplete}},
		PageDebts:    {Allowed: false, Buttons: []ActionKey{ActionCollect}},
	}

	cases := []struct {
		name    string
		page    PageKey
		buttons []ActionKey
		want    bool
	}{
		{"sayfa erişimi", PageReceipts, nil, true},
		{"izinli buton", PageReceipts, []ActionKey{ActionCreate}, true},
		{"iki izinli buton", PageReceipts, []ActionKey{ActionCreate, ActionComplete}, true},
		{"izinsiz buton", PageReceipts, []ActionKey{ActionDelete}, false},
		{"erişimi kapalı sayfa", PageDebts, nil, false},
		{"kapalı sayfada buton", PageDebts, []ActionKey{ActionCollect}, false},
		{"haritada olmayan sayfa", PageUsers, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Allows(tc.page, tc.buttons...); got != tc.want {
				t.Errorf("Allows(%s, %v) = %v, %v bekleniyordu", tc.page, tc.buttons, got, tc.want)
			}
		})
	}
}

func TestPermissionMapValueScanRoundTrip(t *testing.T) {
	original := PermissionMap{
		PageProducts: {Allowed: true, Buttons: []ActionKey{ActionCreate, ActionImport}},
	}

	v, err := original.Value()
	if err != nil {
		t.Fatalf("Value başarısız: %v", err)
	}

	var restored PermissionMap
	if err := restored.Scan(v); err != nil {
		t.Fatalf("Scan başarısız: %v", err)
	}

	if !restored.Allows(PageProducts, ActionCreate, ActionImport) {
		t.Error("geri yüklenen harita aynı yetkileri taşımalı")
	}
	if restored.Allows(PageProducts, ActionDelete) {
		t.Error("geri yüklenen harita fazladan yetki taşımamalı")
	}
}

func TestPermissionMapScanNil(t *testing.T) {
	var m PermissionMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("nil değer hata üretmemeli: %v", err)
	}
	if m == nil {
		t.Error("nil değer boş haritaya çözülmeli")
	}
	if m.Allows(PageDashboard) {
		t.Error("boş harita hiçbir sayfaya izin vermemeli")
	}
}
