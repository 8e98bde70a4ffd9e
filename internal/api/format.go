package api

import (
	"fmt"
	"strings"
	"time"

	"dpstore-backend/internal/models"
	"dpstore-backend/internal/util"
)

// Presentation helpers for the *_formatted fields the storefront and back
// office render verbatim (id-ID locale).

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatDateTimeLong renders "05 Januari 2026 14.30".
func formatDateTimeLong(t time.Time) string {
	return fmt.Sprintf("%02d %s %d %02d.%02d",
		t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// formatDateTimeShort renders "05/01/26 14.30".
func formatDateTimeShort(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%02d %02d.%02d",
		t.Day(), int(t.Month()), t.Year()%100, t.Hour(), t.Minute())
}

// formatStatus renders "SUCCESS" as "Success".
func formatStatus(status string) string {
	if status == "" {
		return "N/A"
	}
	return strings.ToUpper(status[:1]) + strings.ToLower(status[1:])
}

// formatPoints renders earned/used reward points as "+1.500 Poin" (or
// "-1.500 Poin"), and "-" when there is nothing to show.
func formatPoints(points int64, sign string) string {
	if points <= 0 {
		return "-"
	}
	return sign + strings.TrimPrefix(util.FormatRupiah(points), "Rp ") + " Poin"
}

type transactionCheckResponse struct {
	models.TransactionDetail
	CreatedAtFormatted     string `json:"created_at_formatted"`
	TotalPriceFormatted    string `json:"total_price_formatted"`
	StatusFormatted        string `json:"status_formatted"`
	RewardsEarnedFormatted string `json:"rewards_earned_formatted"`
	RewardsUsedFormatted   string `json:"rewards_used_formatted"`
}

func decorateTransactionDetail(t *models.TransactionDetail) transactionCheckResponse {
	var earned int64
	if t.RewardsEarned != nil {
		earned = *t.RewardsEarned
	}
	return transactionCheckResponse{
		TransactionDetail:      *t,
		CreatedAtFormatted:     formatDateTimeLong(t.CreatedAt),
		TotalPriceFormatted:    util.FormatRupiah(t.TotalPrice),
		StatusFormatted:        formatStatus(t.Status),
		RewardsEarnedFormatted: formatPoints(earned, "+"),
		RewardsUsedFormatted:   formatPoints(t.RewardsUsed, "-"),
	}
}

type adminTransactionResponse struct {
	models.AdminTransactionRow
	CreatedAtFormatted  string `json:"created_at_formatted"`
	UpdatedAtFormatted  string `json:"updated_at_formatted"`
	TotalPriceFormatted string `json:"total_price_formatted"`
	StatusFormatted     string `json:"status_formatted"`
}

func decorateAdminTransactions(rows []models.AdminTransactionRow) []adminTransactionResponse {
	out := make([]adminTransactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, adminTransactionResponse{
			AdminTransactionRow: row,
			CreatedAtFormatted:  formatDateTimeShort(row.CreatedAt),
			UpdatedAtFormatted:  formatDateTimeShort(row.UpdatedAt),
			TotalPriceFormatted: util.FormatRupiah(row.TotalPrice),
			StatusFormatted:     formatStatus(row.Status),
		})
	}
	return out
}
