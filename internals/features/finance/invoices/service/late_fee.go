// file: internals/features/finance/invoices/service/late_fee.go
//
// Engine murni untuk denda keterlambatan & derivasi status invoice.
// Tidak menyentuh DB/HTTP — caller yang fetch input dan persist hasil.
package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
)

// ValidationError: input tidak valid (due date kosong, amount negatif, dsb).
// Dikembalikan ke caller, tidak pernah retry otomatis.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

var hundred = decimal.NewFromInt(100)

// truncateDay buang jam/menit supaya selisih hari dihitung per tanggal (floor).
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysPastDue = floor((asOf - dueDate) / 1 hari). Negatif berarti belum jatuh tempo.
func DaysPastDue(dueDate, asOf time.Time) int {
	return int(truncateDay(asOf).Sub(truncateDay(dueDate)) / (24 * time.Hour))
}

// PickRule memilih rule aktif yang mencakup kategori invoice dengan grace
// period paling kecil. Seri → yang lebih dulu dibuat menang.
func PickRule(rules []rulemodel.LateFeeRule, category string) *rulemodel.LateFeeRule {
	var best *rulemodel.LateFeeRule
	for i := range rules {
		r := &rules[i]
		if !r.LateFeeRuleIsActive || !r.AppliesTo(category) {
			continue
		}
		if best == nil ||
			r.LateFeeRuleGraceDays < best.LateFeeRuleGraceDays ||
			(r.LateFeeRuleGraceDays == best.LateFeeRuleGraceDays &&
				r.LateFeeRuleCreatedAt.Before(best.LateFeeRuleCreatedAt)) {
			best = r
		}
	}
	return best
}

// Penalty menghitung besaran denda untuk satu rule terhadap satu invoice.
// FIXED_AMOUNT → value; PERCENTAGE → net * value / 100. Dua desimal.
func Penalty(rule rulemodel.LateFeeRule, netAmount decimal.Decimal) decimal.Decimal {
	switch rule.LateFeeRuleType {
	case rulemodel.LateFeeRuleTypePercentage:
		return netAmount.Mul(rule.LateFeeRuleValue).Div(hundred).Round(2)
	default: // FIXED_AMOUNT
		return rule.LateFeeRuleValue.Round(2)
	}
}

// ApplyLateFee mengevaluasi satu invoice terhadap rule aktif per asOf.
//
// Aturan:
//   - dueDate kosong → ValidationError (bukan silent skip)
//   - belum lewat jatuh tempo (daysPastDue <= 0) → no-op
//   - invoice sudah pernah kena denda (late fee > 0) → no-op, idempotent;
//     denda yang sudah di-stamp dibekukan walau rule berubah
//   - rule terpilih hanya mengenakan denda saat daysPastDue > graceDays (STRICT)
//
// Return true jika late fee baru di-stamp ke invoice.
func ApplyLateFee(inv *invmodel.Invoice, activeRules []rulemodel.LateFeeRule, asOf time.Time) (bool, error) {
	if inv == nil {
		return false, &ValidationError{Field: "invoice", Reason: "wajib diisi"}
	}
	if inv.InvoiceDueDate.IsZero() {
		return false, &ValidationError{Field: "invoice_due_date", Reason: "wajib diisi"}
	}
	if inv.InvoiceNetAmount.IsNegative() {
		return false, &ValidationError{Field: "invoice_net_amount", Reason: "tidak boleh negatif"}
	}

	if inv.InvoiceStatus == invmodel.InvoiceStatusCancelled {
		return false, nil
	}
	if inv.InvoiceLateFeeAmount.IsPositive() {
		// sudah pernah dikenai denda → beku
		return false, nil
	}

	daysPastDue := DaysPastDue(inv.InvoiceDueDate, asOf)
	if daysPastDue <= 0 {
		return false, nil
	}

	rule := PickRule(activeRules, inv.InvoiceFeeCategory)
	if rule == nil {
		return false, nil
	}
	if daysPastDue <= rule.LateFeeRuleGraceDays {
		// pas di batas grace TIDAK kena (kondisi strictly greater)
		return false, nil
	}

	penalty := Penalty(*rule, inv.InvoiceNetAmount)
	if !penalty.IsPositive() {
		return false, nil
	}

	inv.InvoiceLateFeeAmount = penalty
	return true, nil
}

// DeriveStatus menurunkan status tampilan dari paid vs net+lateFee dan tanggal.
// CANCELLED sticky: tidak pernah di-derive ulang.
func DeriveStatus(inv invmodel.Invoice, asOf time.Time) invmodel.InvoiceStatus {
	if inv.InvoiceStatus == invmodel.InvoiceStatusCancelled {
		return invmodel.InvoiceStatusCancelled
	}

	payable := inv.PayableAmount()
	switch {
	case inv.InvoicePaidAmount.GreaterThanOrEqual(payable):
		return invmodel.InvoiceStatusPaid
	case inv.InvoicePaidAmount.IsPositive():
		return invmodel.InvoiceStatusPartiallyPaid
	case truncateDay(asOf).After(truncateDay(inv.InvoiceDueDate)):
		return invmodel.InvoiceStatusOverdue
	default:
		return invmodel.InvoiceStatusIssued
	}
}
