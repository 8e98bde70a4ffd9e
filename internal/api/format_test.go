package api

import (
	"testing"
	"time"

	"dpstore-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateTimeLong(t *testing.T) {
	ts := time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "05 Januari 2026 14.30", formatDateTimeLong(ts))

	ts = time.Date(2025, time.December, 31, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "31 Desember 2025 09.05", formatDateTimeLong(ts))
}

func TestFormatDateTimeShort(t *testing.T) {
	ts := time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "05/01/26 14.30", formatDateTimeShort(ts))
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "Success", formatStatus("SUCCESS"))
	assert.Equal(t, "Pending", formatStatus("PENDING"))
	assert.Equal(t, "N/A", formatStatus(""))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "+1.500 Poin", formatPoints(1500, "+"))
	assert.Equal(t, "-13.500 Poin", formatPoints(13500, "-"))
	assert.Equal(t, "-", formatPoints(0, "+"))
}

func TestDecorateTransactionDetail(t *testing.T) {
	earned := int64(1500)
	detail := &models.TransactionDetail{
		Transaction: models.Transaction{
			ExternalID:    "TX-DP-1700000000000-ABC",
			TotalPrice:    135000,
			Status:        models.StatusSuccess,
			RewardsUsed:   13500,
			RewardsEarned: &earned,
			CreatedAt:     time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC),
		},
	}

	resp := decorateTransactionDetail(detail)
	assert.Equal(t, "05 Januari 2026 14.30", resp.CreatedAtFormatted)
	assert.Equal(t, "Rp 135.000", resp.TotalPriceFormatted)
	assert.Equal(t, "Success", resp.StatusFormatted)
	assert.Equal(t, "+1.500 Poin", resp.RewardsEarnedFormatted)
	assert.Equal(t, "-13.500 Poin", resp.RewardsUsedFormatted)
}

func TestDecorateTransactionDetailPendingOrder(t *testing.T) {
	detail := &models.TransactionDetail{
		Transaction: models.Transaction{
			TotalPrice: 50000,
			Status:     models.StatusPending,
			CreatedAt:  time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	resp := decorateTransactionDetail(detail)
	assert.Equal(t, "Pending", resp.StatusFormatted)
	assert.Equal(t, "-", resp.RewardsEarnedFormatted)
	assert.Equal(t, "-", resp.RewardsUsedFormatted)
}

func TestDecorateAdminTransactions(t *testing.T) {
	rows := []models.AdminTransactionRow{{
		ExternalID: "TX-DP-1700000000000-ABC",
		TotalPrice: 135000,
		Status:     models.StatusFailed,
		CreatedAt:  time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, time.January, 6, 10, 15, 0, 0, time.UTC),
	}}

	out := decorateAdminTransactions(rows)
	assert.Len(t, out, 1)
	assert.Equal(t, "05/01/26 14.30", out[0].CreatedAtFormatted)
	assert.Equal(t, "06/01/26 10.15", out[0].UpdatedAtFormatted)
	assert.Equal(t, "Rp 135.000", out[0].TotalPriceFormatted)
	assert.Equal(t, "Failed", out[0].StatusFormatted)
}
