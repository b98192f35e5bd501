package models

import "testing"

func TestVendorType(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Parts", "acme_parts"},
		{"WHOLESALE", "wholesale"},
		{"Two  Spaces", "two__spaces"},
	}
	for _, c := range cases {
		v := Vendor{Name: c.name}
		if got := v.VendorType(); got != c.want {
			t.Errorf("VendorType(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestVendorBrandLineCodeSet(t *testing.T) {
	vb := VendorBrand{LineCode: "A, B ,,C"}
	got := vb.LineCodeSet()
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("LineCodeSet = %v", got)
	}
}

func TestVendorBrandAcceptsLineCode(t *testing.T) {
	vb := VendorBrand{LineCode: "A,B"}
	if !vb.AcceptsLineCode("B") {
		t.Error("B should be accepted")
	}
	if vb.AcceptsLineCode("Z") {
		t.Error("Z should not be accepted")
	}
}

func TestPackagePredicates(t *testing.T) {
	p := Package{Weight: 2, BoxID: 1}
	if !p.Quotable() {
		t.Error("package with weight and box should be quotable")
	}
	if !p.RatePending() {
		t.Error("package without rates should be pending")
	}

	p.TrackingNumber = "1Z999"
	if p.Quotable() {
		t.Error("labeled package should not be quotable")
	}
	if p.RatePending() {
		t.Error("labeled package should not be pending")
	}

	empty := Package{}
	if empty.Quotable() {
		t.Error("package without weight or box should not be quotable")
	}
}
