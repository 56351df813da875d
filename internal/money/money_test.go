package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    Cents
		wantErr error
	}{
		{name: "whole", in: 90, want: 9000},
		{name: "two decimals", in: 12.34, want: 1234},
		{name: "float noise", in: 0.1 + 0.2, want: 30},
		{name: "half rounds away from zero", in: 0.125, want: 13},
		{name: "negative half rounds away from zero", in: -0.125, want: -13},
		{name: "below half a cent", in: 0.004, want: 0},
		{name: "NaN", in: math.NaN(), wantErr: ErrNonFinite},
		{name: "+Inf", in: math.Inf(1), wantErr: ErrNonFinite},
		{name: "-Inf", in: math.Inf(-1), wantErr: ErrNonFinite},
		{name: "too large", in: 1e15, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromFloat(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsFormatting(t *testing.T) {
	assert.Equal(t, "60.00", Cents(6000).String())
	assert.Equal(t, "-0.05", Cents(-5).String())
	assert.Equal(t, 33.33, Cents(3333).Float64())
	assert.Equal(t, Cents(5), Cents(-5).Abs())
	assert.Equal(t, Cents(-5), Min(-5, 3))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		total Cents
		n     int
		want  []Cents
	}{
		{total: 9000, n: 3, want: []Cents{3000, 3000, 3000}},
		{total: 10000, n: 3, want: []Cents{3334, 3333, 3333}},
		{total: 2, n: 3, want: []Cents{1, 1, 0}},
		{total: 500, n: 1, want: []Cents{500}},
		{total: 500, n: 0, want: nil},
	}

	for _, tt := range tests {
		got := Split(tt.total, tt.n)
		assert.Equal(t, tt.want, got, "Split(%d, %d)", tt.total, tt.n)

		var sum Cents
		for _, s := range got {
			sum += s
		}
		if tt.n > 0 {
			assert.Equal(t, tt.total, sum, "shares must add up to the total")
		}
	}
}
