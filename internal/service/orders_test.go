package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedemptionFor(t *testing.T) {
	tests := []struct {
		name    string
		gross   int64
		balance int64
		want    int64
	}{
		{"cap binds", 100000, 50000, 10000},
		{"balance binds", 100000, 500, 500},
		{"balance equals cap", 100000, 10000, 10000},
		{"zero balance", 100000, 0, 0},
		{"zero gross", 0, 5000, 0},
		{"cap floors", 10005, 50000, 1000},
		{"tiny order", 9, 5000, 0},
		{"negative balance", 100000, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedemptionFor(tt.gross, tt.balance))
		})
	}
}

func TestAccrualFor(t *testing.T) {
	tests := []struct {
		name        string
		totalPrice  int64
		rewardsUsed int64
		want        int64
	}{
		{"no redemption", 150000, 0, 1500},
		{"accrues on gross not net", 135000, 15000, 1500},
		{"floors", 99, 0, 0},
		{"exactly one point", 100, 0, 1},
		{"floors with redemption", 95, 4, 0},
		{"zero order", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccrualFor(tt.totalPrice, tt.rewardsUsed))
		})
	}
}

// The two rules compose: the accrual base is the pre-redemption value, so a
// buyer earns the same points whether or not they redeemed.
func TestRedemptionThenAccrual(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		quantity    int64
		balance     int64
		wantUsed    int64
		wantTotal   int64
		wantAccrued int64
	}{
		{"registered with large balance", 150000, 1, 20000, 15000, 135000, 1500},
		{"registered with small balance", 150000, 1, 700, 700, 149300, 1500},
		{"multi quantity", 25000, 4, 50000, 10000, 90000, 1000},
		{"no balance", 150000, 1, 0, 0, 150000, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross := tt.price * tt.quantity
			used := RedemptionFor(gross, tt.balance)
			total := gross - used

			assert.Equal(t, tt.wantUsed, used)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantAccrued, AccrualFor(total, used))
		})
	}
}

func TestNewExternalID(t *testing.T) {
	pattern := regexp.MustCompile(`^TX-DP-\d{13,}-[0-9A-Z]{3}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewExternalID()
		require.Regexp(t, pattern, id)
		seen[id] = true
	}
	// Collisions within one millisecond are possible but should be rare.
	assert.Greater(t, len(seen), 90)
}

func TestCreateOrderGuest(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestUpdateStatusAccruesOnce(t *testing.T) {
	t.Skip("Integration test - requires database")
}
