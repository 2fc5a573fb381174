package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Triggered(t *testing.T) {
	t.Parallel()

	p := Product{Name: "Console X", URL: "http://x", TargetPrice: 300.0}

	tests := []struct {
		name  string
		price float64
		want  bool
	}{
		{name: "below target", price: 299.99, want: true},
		{name: "exactly at target", price: 300.0, want: true},
		{name: "above target", price: 300.01, want: false},
		{name: "far above target", price: 450.0, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.Triggered(tt.price))
		})
	}
}

func TestPriceAlert_Message(t *testing.T) {
	t.Parallel()

	a := PriceAlert{
		Product:       Product{Name: "Console X", URL: "http://x", TargetPrice: 300.0},
		ObservedPrice: 299.99,
	}

	msg := a.Message()
	assert.Contains(t, msg, "Console X")
	assert.Contains(t, msg, "299.99")
	assert.Contains(t, msg, "300.00")
	assert.Contains(t, msg, "http://x")
}
