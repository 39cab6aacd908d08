package database

import (
	"log"

	"gorm.io/gorm"

	dismodel "sekolahku_backend/internals/features/finance/discounts/model"
	fsmodel "sekolahku_backend/internals/features/finance/fee_structures/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	rulemodel "sekolahku_backend/internals/features/finance/late_fee_rules/model"
	pmodel "sekolahku_backend/internals/features/finance/payments/model"
	amodel "sekolahku_backend/internals/features/hr/attendance/model"
	smodel "sekolahku_backend/internals/features/students/students/model"
	umodel "sekolahku_backend/internals/features/users/auth/model"
)

// AutoMigrate menjalankan migrasi skema seluruh model aplikasi.
func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&umodel.User{},
		&smodel.Student{},
		&smodel.Guardian{},
		&fsmodel.FeeStructure{},
		&dismodel.Discount{},
		&rulemodel.LateFeeRule{},
		&invmodel.Invoice{},
		&pmodel.Payment{},
		&amodel.StaffAttendance{},
		&amodel.DeviceEvent{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}
