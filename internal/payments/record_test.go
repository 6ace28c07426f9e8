package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{"2500.00", 250000, false},
		{"2500", 250000, false},
		{"10.5", 1050, false},
		{"0.07", 7, false},
		{" 75.00 ", 7500, false},
		{"", 0, true},
		{".50", 0, true},
		{"1.", 0, true},
		{"1.234", 0, true},
		{"-5.00", 0, true},
		{"1,000.00", 0, true},
		{"abc", 0, true},
		{"-0.50", 0, true},
		{"+5.00", 0, true},
		{"1.+5", 0, true},
		{"1.-5", 0, true},
		{"92233720368547757.99", 9223372036854775799, false},
		{"92233720368547758.00", 0, true},
		{"9223372036854775807", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAmount_String(t *testing.T) {
	require.Equal(t, "0.00", Amount(0).String())
	require.Equal(t, "0.05", Amount(5).String())
	require.Equal(t, "150.00", Amount(15000).String())
	require.Equal(t, "-1.25", Amount(-125).String())
	require.Equal(t, "$2500.00", Amount(250000).Dollars())
}

func TestAmount_YAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(struct {
		A Amount `yaml:"a"`
	}{A: 1050})
	require.NoError(t, err)
	require.Contains(t, string(out), "10.50")

	var back struct {
		A Amount `yaml:"a"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, Amount(1050), back.A)
}

func TestStatus(t *testing.T) {
	require.True(t, StatusCompleted.Valid())
	require.False(t, Status("refunded").Valid())
	require.Equal(t, "Pending", StatusPending.Label())
	require.Equal(t, "", Status("").Label())
}

func TestPaymentRecord_DisplayDate(t *testing.T) {
	r := PaymentRecord{Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, "Jan 15, 2024", r.DisplayDate())
}

func TestPaymentRecord_Validate(t *testing.T) {
	require.Error(t, PaymentRecord{Status: StatusPending}.Validate())
	require.Error(t, PaymentRecord{ID: "x", Status: "refunded"}.Validate())
	require.Error(t, PaymentRecord{ID: "x", Status: StatusFailed, Amount: -1}.Validate())
	require.NoError(t, PaymentRecord{ID: "x", Status: StatusFailed}.Validate())
}
