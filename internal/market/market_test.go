package market

import (
	"errors"
	"math"
	"testing"
)

func TestComputeDominance_SampleVolumes(t *testing.T) {
	d := ComputeDominance(156789, 167890)
	if !d.Defined {
		t.Fatal("expected defined dominance")
	}
	if math.Abs(d.Catguette-48.29) > 0.01 {
		t.Errorf("catguette = %.4f, want ~48.29", d.Catguette)
	}
	if math.Abs(d.Doguette-51.71) > 0.01 {
		t.Errorf("doguette = %.4f, want ~51.71", d.Doguette)
	}
}

func TestComputeDominance_SumsToHundred(t *testing.T) {
	cases := [][2]float64{{1, 1}, {0, 5}, {5, 0}, {0.0001, 99999}, {156789, 167890}, {3, 7}}
	for _, c := range cases {
		d := ComputeDominance(c[0], c[1])
		if sum := d.Catguette + d.Doguette; math.Abs(sum-100) > 1e-9 {
			t.Errorf("%v: sum = %v, want 100", c, sum)
		}
	}
}

func TestComputeDominance_ZeroTotal(t *testing.T) {
	d := ComputeDominance(0, 0)
	if d.Defined {
		t.Error("zero volume should not be defined")
	}
	if d.Catguette != 50 || d.Doguette != 50 {
		t.Errorf("got %v/%v, want 50/50", d.Catguette, d.Doguette)
	}
}

func TestSampleData_Valid(t *testing.T) {
	if err := SampleData().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSampleData_FreshCopies(t *testing.T) {
	a := SampleData()
	a.Catguette.TopHolders[0].Amount = 1
	b := SampleData()
	if b.Catguette.TopHolders[0].Amount != 50000 {
		t.Error("SampleData shares backing arrays between calls")
	}
}

func TestValidate_Rejects(t *testing.T) {
	var nilData *DashboardData
	if err := nilData.Validate(); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("nil data: got %v", err)
	}

	d := SampleData()
	d.Doguette.Volume = -1
	if err := d.Validate(); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("negative volume: got %v", err)
	}

	d = SampleData()
	d.Catguette.PriceHistory[2].Date = "2024-01-01"
	if err := d.Validate(); err == nil {
		t.Error("expected error for out-of-order dates")
	}

	d = SampleData()
	d.Catguette.PriceHistory[0].Date = "Jan 1"
	if err := d.Validate(); err == nil {
		t.Error("expected error for malformed date")
	}

	d = SampleData()
	d.Doguette.TopHolders[1].Address = ""
	if err := d.Validate(); err == nil {
		t.Error("expected error for empty holder address")
	}
}

func TestClone_Independent(t *testing.T) {
	a := SampleData()
	b := a.Clone()
	b.Doguette.PriceHistory[0].Price = 9
	if a.Doguette.PriceHistory[0].Price == 9 {
		t.Error("Clone shares price history")
	}
}

func TestToken(t *testing.T) {
	d := SampleData()
	if s, ok := d.Token(Doguette); !ok || s.Holders != 2456 {
		t.Errorf("Token(Doguette) = %+v, %v", s, ok)
	}
	if _, ok := d.Token("Hamsterette"); ok {
		t.Error("unknown token reported present")
	}
}
