package cashflow

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProject(t *testing.T) {
	tests := []struct {
		assets, rate Money
		periods      int
		want         []Money
	}{
		{JPY(1000), JPY(100), 3, []Money{JPY(1100), JPY(1200), JPY(1300)}},
		{JPY(1000), JPY(0), 2, []Money{JPY(1000), JPY(1000)}},
		{JPY(100), JPY(-60), 3, []Money{JPY(40), JPY(-20), JPY(-80)}}, // no clamping at zero
		{JPY(1000), JPY(100), 0, []Money{}},
		{JPY(1000), JPY(100), -1, []Money{}},
		{NO(0), NO(0), 1, []Money{NO(0)}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v+%v×%d", tt.assets, tt.rate, tt.periods), func(t *testing.T) {
			got := Project(tt.assets, tt.rate, tt.periods)
			if diff := cmp.Diff(tt.want, got, equateMoney); diff != "" {
				t.Errorf("Project() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProject_Monotonic(t *testing.T) {
	for _, rate := range []Money{JPY(50_000), JPY(-50_000), JPY(0)} {
		p := Project(JPY(1_000_000), rate, DefaultPeriods)
		if len(p) != DefaultPeriods {
			t.Fatalf("Project() length = %d, want %d", len(p), DefaultPeriods)
		}
		prev := JPY(1_000_000)
		for i, b := range p {
			switch {
			case rate.IsPositive() && !b.GreaterThan(prev):
				t.Errorf("rate %v: balance %d = %v is not above %v", rate, i, b, prev)
			case rate.IsNegative() && !b.LessThan(prev):
				t.Errorf("rate %v: balance %d = %v is not below %v", rate, i, b, prev)
			case rate.IsZero() && !b.Equal(prev):
				t.Errorf("rate %v: balance %d = %v, want %v", rate, i, b, prev)
			}
			prev = b
		}
	}
}
