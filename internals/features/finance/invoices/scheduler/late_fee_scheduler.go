// file: internals/features/finance/invoices/scheduler/late_fee_scheduler.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	invservice "sekolahku_backend/internals/features/finance/invoices/service"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
)

const sweepBatchSize = 200

// StartLateFeeScheduler menjalankan sweep denda harian di goroutine terpisah.
// Dipanggil sekali dari main.
func StartLateFeeScheduler(db *gorm.DB) {
	go func() {
		for {
			now := time.Now()
			log.Println("🕒 [SCHEDULER] Mulai sweep denda keterlambatan:", now.Format("2006-01-02 15:04:05"))

			evaluated, applied, err := RunLateFeeSweep(db, now)
			if err != nil {
				log.Println("❌ [SCHEDULER] Sweep denda gagal:", err)
			} else {
				log.Printf("✅ [SCHEDULER] Sweep selesai: %d invoice dievaluasi, %d kena denda", evaluated, applied)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}

// RunLateFeeSweep mengevaluasi semua invoice terbuka yang sudah lewat jatuh
// tempo dan belum pernah kena denda, lalu stamp denda + refresh status.
// Dipakai scheduler harian dan endpoint trigger manual.
func RunLateFeeSweep(db *gorm.DB, asOf time.Time) (evaluated int, applied int, err error) {
	var rules []rulemodel.LateFeeRule
	if err := db.
		Where("late_fee_rule_is_active = ?", true).
		Order("late_fee_rule_created_at ASC").
		Find(&rules).Error; err != nil {
		return 0, 0, err
	}
	if len(rules) == 0 {
		log.Println("⚠️ [SCHEDULER] Tidak ada rule denda aktif, sweep dilewati")
		return 0, 0, nil
	}

	lastID := ""
	for {
		var batch []invmodel.Invoice
		q := db.
			Where("invoice_late_fee_amount = ?", 0).
			Where("invoice_status NOT IN ?", []invmodel.InvoiceStatus{
				invmodel.InvoiceStatusPaid, invmodel.InvoiceStatusCancelled,
			}).
			Where("invoice_due_date < ?", asOf).
			Order("invoice_id ASC").
			Limit(sweepBatchSize)
		if lastID != "" {
			q = q.Where("invoice_id > ?", lastID)
		}
		if err := q.Find(&batch).Error; err != nil {
			return evaluated, applied, err
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			lastID = batch[i].InvoiceID.String()
			evaluated++

			stamped, err := applyOne(db, batch[i].InvoiceID.String(), rules, asOf)
			if err != nil {
				log.Println("❌ [SCHEDULER] Gagal proses invoice", batch[i].InvoiceID, ":", err)
				continue
			}
			if stamped {
				applied++
			}
		}

		if len(batch) < sweepBatchSize {
			break
		}
	}
	return evaluated, applied, nil
}

// applyOne mengerjakan satu invoice dalam transaksi sendiri supaya kegagalan
// satu row tidak menggagalkan seluruh sweep.
func applyOne(db *gorm.DB, invoiceID string, rules []rulemodel.LateFeeRule, asOf time.Time) (bool, error) {
	stamped := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv invmodel.Invoice
		q := tx.Where("invoice_id = ?", invoiceID)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&inv).Error; err != nil {
			return err
		}

		applied, err := invservice.ApplyLateFee(&inv, rules, asOf)
		if err != nil {
			return err
		}

		newStatus := invservice.DeriveStatus(inv, asOf)
		if !applied && newStatus == inv.InvoiceStatus {
			return nil
		}
		inv.InvoiceStatus = newStatus

		if err := tx.Model(&invmodel.Invoice{}).
			Where("invoice_id = ?", invoiceID).
			Updates(map[string]interface{}{
				"invoice_late_fee_amount": inv.InvoiceLateFeeAmount,
				"invoice_status":          inv.InvoiceStatus,
			}).Error; err != nil {
			return err
		}
		stamped = applied
		return nil
	})
	return stamped, err
}
