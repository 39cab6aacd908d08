package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testInvoice(due time.Time, net int64) invmodel.Invoice {
	netDec := decimal.NewFromInt(net)
	return invmodel.Invoice{
		InvoiceStudentID:   "00000000-0000-0000-0006-000000000003",
		InvoiceFeeCategory: "SPP",
		InvoiceIssueDate:   due.AddDate(0, -1, 0),
		InvoiceDueDate:     due,
		InvoiceTotalAmount: netDec,
		InvoiceNetAmount:   netDec,
		InvoiceStatus:      invmodel.InvoiceStatusIssued,
	}
}

func fixedRule(value int64, graceDays int) rulemodel.LateFeeRule {
	return rulemodel.LateFeeRule{
		LateFeeRuleName:      "fixed",
		LateFeeRuleType:      rulemodel.LateFeeRuleTypeFixedAmount,
		LateFeeRuleValue:     decimal.NewFromInt(value),
		LateFeeRuleGraceDays: graceDays,
		LateFeeRuleIsActive:  true,
	}
}

func percentRule(value int64, graceDays int) rulemodel.LateFeeRule {
	r := fixedRule(value, graceDays)
	r.LateFeeRuleName = "percent"
	r.LateFeeRuleType = rulemodel.LateFeeRuleTypePercentage
	return r
}

// Skenario A: due 2025-02-28, net 1300, FIXED 100 grace 10.
// asOf tepat di batas grace TIDAK kena; sehari setelahnya kena.
func TestApplyLateFee_GraceBoundaryStrict(t *testing.T) {
	due := date(2025, time.February, 28)
	rules := []rulemodel.LateFeeRule{fixedRule(100, 10)}

	inv := testInvoice(due, 1300)
	applied, err := ApplyLateFee(&inv, rules, date(2025, time.March, 10)) // daysPastDue = 10
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, inv.InvoiceLateFeeAmount.IsZero())

	applied, err = ApplyLateFee(&inv, rules, date(2025, time.March, 11)) // daysPastDue = 11
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.PayableAmount().Equal(decimal.NewFromInt(1400)))
}

// Skenario B: PERCENTAGE 5%, grace 5, 6 hari telat → 65 (5% dari 1300).
func TestApplyLateFee_Percentage(t *testing.T) {
	due := date(2025, time.February, 28)
	inv := testInvoice(due, 1300)
	rules := []rulemodel.LateFeeRule{percentRule(5, 5)}

	applied, err := ApplyLateFee(&inv, rules, due.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(65)))
}

func TestApplyLateFee_PercentageRoundsToTwoPlaces(t *testing.T) {
	inv := testInvoice(date(2025, time.January, 10), 0)
	inv.InvoiceNetAmount = decimal.RequireFromString("999.99")
	rules := []rulemodel.LateFeeRule{percentRule(3, 0)}

	applied, err := ApplyLateFee(&inv, rules, date(2025, time.January, 12))
	require.NoError(t, err)
	assert.True(t, applied)
	// 999.99 * 3% = 29.9997 → 30.00
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.RequireFromString("30.00")))
}

// Idempotence: evaluasi dua kali = evaluasi sekali.
func TestApplyLateFee_Idempotent(t *testing.T) {
	due := date(2025, time.February, 28)
	inv := testInvoice(due, 1300)
	rules := []rulemodel.LateFeeRule{fixedRule(100, 0)}

	applied, err := ApplyLateFee(&inv, rules, due.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = ApplyLateFee(&inv, rules, due.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(100)))
}

// Skenario D: invoice yang sudah kena denda dibekukan, rule baru yang lebih
// agresif tidak boleh mengubah angkanya.
func TestApplyLateFee_StampedFeeIsFrozen(t *testing.T) {
	due := date(2025, time.February, 28)
	inv := testInvoice(due, 1300)
	inv.InvoiceLateFeeAmount = decimal.NewFromInt(100)

	aggressive := []rulemodel.LateFeeRule{percentRule(50, 0)}
	applied, err := ApplyLateFee(&inv, aggressive, due.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(100)))
}

// Monotonicity: sepanjang waktu maju, late fee tidak pernah turun.
func TestApplyLateFee_MonotonicOverTime(t *testing.T) {
	due := date(2025, time.February, 28)
	inv := testInvoice(due, 1300)
	rules := []rulemodel.LateFeeRule{fixedRule(75, 3)}

	prev := decimal.Zero
	for day := 0; day <= 30; day++ {
		_, err := ApplyLateFee(&inv, rules, due.AddDate(0, 0, day))
		require.NoError(t, err)
		assert.True(t, inv.InvoiceLateFeeAmount.GreaterThanOrEqual(prev),
			"late fee turun di hari ke-%d", day)
		prev = inv.InvoiceLateFeeAmount
	}
	assert.True(t, inv.InvoiceLateFeeAmount.Equal(decimal.NewFromInt(75)))
}

func TestApplyLateFee_NotYetDue(t *testing.T) {
	due := date(2025, time.June, 30)
	inv := testInvoice(due, 500)
	rules := []rulemodel.LateFeeRule{fixedRule(100, 0)}

	applied, err := ApplyLateFee(&inv, rules, date(2025, time.June, 15))
	require.NoError(t, err)
	assert.False(t, applied)

	// tepat di hari jatuh tempo juga belum kena (daysPastDue = 0)
	applied, err = ApplyLateFee(&inv, rules, due)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestApplyLateFee_MissingDueDate(t *testing.T) {
	inv := testInvoice(time.Time{}, 500)
	_, err := ApplyLateFee(&inv, []rulemodel.LateFeeRule{fixedRule(100, 0)}, date(2025, time.July, 1))
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "invoice_due_date", ve.Field)
}

func TestApplyLateFee_NegativeNetAmount(t *testing.T) {
	inv := testInvoice(date(2025, time.January, 1), 100)
	inv.InvoiceNetAmount = decimal.NewFromInt(-10)
	_, err := ApplyLateFee(&inv, []rulemodel.LateFeeRule{fixedRule(100, 0)}, date(2025, time.February, 1))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

// Rule selection: grace terkecil menang; seri → yang dibuat duluan.
func TestPickRule_SmallestGraceThenCreationOrder(t *testing.T) {
	early := fixedRule(10, 5)
	early.LateFeeRuleCreatedAt = date(2025, time.January, 1)
	late := percentRule(9, 5)
	late.LateFeeRuleCreatedAt = date(2025, time.February, 1)
	loose := fixedRule(999, 30)
	loose.LateFeeRuleCreatedAt = date(2024, time.January, 1)

	picked := PickRule([]rulemodel.LateFeeRule{loose, late, early}, "SPP")
	require.NotNil(t, picked)
	assert.Equal(t, "fixed", picked.LateFeeRuleName)
	assert.Equal(t, 5, picked.LateFeeRuleGraceDays)
}

func TestPickRule_CategoryFilterAndInactive(t *testing.T) {
	spp := fixedRule(10, 0)
	spp.LateFeeRuleCategories = []string{"SPP"}
	book := fixedRule(20, 0)
	book.LateFeeRuleCategories = []string{"BOOK"}
	inactive := fixedRule(5, 0)
	inactive.LateFeeRuleIsActive = false

	picked := PickRule([]rulemodel.LateFeeRule{inactive, book, spp}, "SPP")
	require.NotNil(t, picked)
	assert.True(t, picked.LateFeeRuleValue.Equal(decimal.NewFromInt(10)))

	assert.Nil(t, PickRule([]rulemodel.LateFeeRule{book}, "SPP"))
}

// Tidak ada rule yang grace-nya terlampaui → no-op, bukan error.
func TestApplyLateFee_NoRuleExceeded(t *testing.T) {
	due := date(2025, time.February, 28)
	inv := testInvoice(due, 1300)
	rules := []rulemodel.LateFeeRule{fixedRule(100, 60)}

	applied, err := ApplyLateFee(&inv, rules, due.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDeriveStatus(t *testing.T) {
	due := date(2025, time.March, 31)

	inv := testInvoice(due, 1000)
	assert.Equal(t, invmodel.InvoiceStatusIssued, DeriveStatus(inv, due))
	assert.Equal(t, invmodel.InvoiceStatusOverdue, DeriveStatus(inv, due.AddDate(0, 0, 1)))

	inv.InvoicePaidAmount = decimal.NewFromInt(400)
	assert.Equal(t, invmodel.InvoiceStatusPartiallyPaid, DeriveStatus(inv, due))

	inv.InvoicePaidAmount = decimal.NewFromInt(1000)
	assert.Equal(t, invmodel.InvoiceStatusPaid, DeriveStatus(inv, due))

	// denda menggeser ambang PAID
	inv.InvoiceLateFeeAmount = decimal.NewFromInt(100)
	assert.Equal(t, invmodel.InvoiceStatusPartiallyPaid, DeriveStatus(inv, due))
	inv.InvoicePaidAmount = decimal.NewFromInt(1100)
	assert.Equal(t, invmodel.InvoiceStatusPaid, DeriveStatus(inv, due))
}

func TestDeriveStatus_CancelledSticky(t *testing.T) {
	inv := testInvoice(date(2025, time.March, 31), 1000)
	inv.InvoiceStatus = invmodel.InvoiceStatusCancelled
	inv.InvoicePaidAmount = decimal.NewFromInt(1000)
	assert.Equal(t, invmodel.InvoiceStatusCancelled, DeriveStatus(inv, date(2025, time.June, 1)))
}

func TestDaysPastDue_FloorsPartialDays(t *testing.T) {
	due := date(2025, time.February, 28)
	// jam berapa pun di hari yang sama dihitung 0 hari
	asOf := time.Date(2025, time.February, 28, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysPastDue(due, asOf))
	assert.Equal(t, 1, DaysPastDue(due, date(2025, time.March, 1)))
	assert.Equal(t, -2, DaysPastDue(due, date(2025, time.February, 26)))
}
