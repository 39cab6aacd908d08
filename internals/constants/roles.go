package constants

import "fmt"

// Role yang dikenali aplikasi
const (
	RoleUser       = "user"       // wali murid / guardian
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant" // staf keuangan
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyFinanceCanAccess = "❌ Hanya admin atau accountant yang boleh mengakses fitur %s."
	ErrOnlyOwnersCanAccess  = "❌ Hanya owner yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleTeacher,
		RoleAccountant,
		RoleAdmin,
		RoleOwner,
	}

	FinanceRoles = []string{
		RoleAccountant,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)
