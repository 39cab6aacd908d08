// file: internals/features/students/students/service/composite_uuid.go
//
// Codec antara composite key (school_id, class_id) milik tabel student
// per-kelas dan string berbentuk UUID yang dipakai subsistem invoicing
// sebagai foreign key student. Layout tetap:
//
//	00000000-0000-0000-{school_id:4}-{class_id:12}
//
// Mapping wajib deterministik & reversible; ini satu-satunya jembatan antara
// dua skema penyimpanan yang saling independen.
package service

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	compositePrefix = "00000000-0000-0000-"
	encodedLen      = 36

	MaxSchoolID int64 = 9_999
	MaxClassID  int64 = 999_999_999_999
)

// FormatError: input codec tidak sesuai layout digit tetap.
// Langsung di-surface, tidak pernah dikoersi diam-diam.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: %q %s", e.Input, e.Reason)
}

// EncodeStudentUUID membentuk composite UUID dari (schoolID, classID).
func EncodeStudentUUID(schoolID, classID int64) (string, error) {
	if schoolID < 0 || schoolID > MaxSchoolID {
		return "", fmt.Errorf("school_id %d di luar rentang [0,%d]", schoolID, MaxSchoolID)
	}
	if classID < 0 || classID > MaxClassID {
		return "", fmt.Errorf("class_id %d di luar rentang [0,%d]", classID, MaxClassID)
	}
	return fmt.Sprintf("%s%04d-%012d", compositePrefix, schoolID, classID), nil
}

// DecodeStudentUUID membalik EncodeStudentUUID.
// decode(encode(s,c)) == (s,c) untuk semua pasangan valid.
func DecodeStudentUUID(s string) (schoolID, classID int64, err error) {
	if len(s) != encodedLen {
		return 0, 0, &FormatError{Input: s, Reason: "panjang harus 36 karakter"}
	}
	if !strings.HasPrefix(s, compositePrefix) {
		return 0, 0, &FormatError{Input: s, Reason: "prefix tetap tidak cocok"}
	}
	rest := s[len(compositePrefix):] // "XXXX-XXXXXXXXXXXX"
	if rest[4] != '-' {
		return 0, 0, &FormatError{Input: s, Reason: "pemisah grup tidak cocok"}
	}
	schoolPart, classPart := rest[:4], rest[5:]
	if !allDigits(schoolPart) || !allDigits(classPart) {
		return 0, 0, &FormatError{Input: s, Reason: "grup harus digit semua"}
	}

	// leading zero dipangkas oleh ParseInt
	schoolID, err = strconv.ParseInt(schoolPart, 10, 64)
	if err != nil {
		return 0, 0, &FormatError{Input: s, Reason: "school_id tidak valid"}
	}
	classID, err = strconv.ParseInt(classPart, 10, 64)
	if err != nil {
		return 0, 0, &FormatError{Input: s, Reason: "class_id tidak valid"}
	}
	return schoolID, classID, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
