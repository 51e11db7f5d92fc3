package core_test

import (
	"testing"

	"gst-billing/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeGST(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		rate      string
		wantCGST  string
		wantTotal string
		expectErr bool
	}{
		{name: "standard 18 percent", base: "200", rate: "18", wantCGST: "18", wantTotal: "236"},
		{name: "zero base", base: "0", rate: "18", wantCGST: "0", wantTotal: "0"},
		{name: "zero rate", base: "500", rate: "0", wantCGST: "0", wantTotal: "500"},
		{name: "five percent", base: "100", rate: "5", wantCGST: "2.5", wantTotal: "105"},
		{name: "rounds half to currency precision", base: "33.33", rate: "18", wantCGST: "3", wantTotal: "39.33"},
		{name: "negative base", base: "-1", rate: "18", expectErr: true},
		{name: "negative rate", base: "100", rate: "-5", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ComputeGST(dec(tt.base), dec(tt.rate))
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.CGST.Equal(got.SGST) {
				t.Errorf("CGST %s != SGST %s", got.CGST, got.SGST)
			}
			if !got.CGST.Equal(dec(tt.wantCGST)) {
				t.Errorf("CGST: want %s, got %s", tt.wantCGST, got.CGST)
			}
			if !got.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("Total: want %s, got %s", tt.wantTotal, got.Total)
			}
			// Total must be exactly base + both halves, independent of rate.
			want := dec(tt.base).Add(got.CGST).Add(got.SGST)
			if !got.Total.Equal(want) {
				t.Errorf("Total %s != base + CGST + SGST %s", got.Total, want)
			}
		})
	}
}

func TestComputeGST_ValidationErrorCarriesField(t *testing.T) {
	_, err := core.ComputeGST(dec("-10"), dec("18"))
	verr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "baseAmount" {
		t.Errorf("field: want baseAmount, got %s", verr.Field)
	}
}
