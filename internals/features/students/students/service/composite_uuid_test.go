package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Skenario C dari lifecycle invoicing.
func TestEncodeDecode_KnownPair(t *testing.T) {
	got, err := EncodeStudentUUID(6, 3)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0006-000000000003", got)

	school, class, err := DecodeStudentUUID("00000000-0000-0000-0006-000000000003")
	require.NoError(t, err)
	assert.Equal(t, int64(6), school)
	assert.Equal(t, int64(3), class)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	schools := []int64{0, 1, 6, 42, 999, 9999}
	classes := []int64{0, 3, 7, 1000, 999999, 999999999999}
	seen := map[string]struct{}{}

	for _, s := range schools {
		for _, c := range classes {
			enc, err := EncodeStudentUUID(s, c)
			require.NoError(t, err)
			require.Len(t, enc, 36)

			// tidak boleh ada tabrakan antar pasangan berbeda
			_, dup := seen[enc]
			require.False(t, dup, "collision pada %s", enc)
			seen[enc] = struct{}{}

			gs, gc, err := DecodeStudentUUID(enc)
			require.NoError(t, err)
			assert.Equal(t, s, gs)
			assert.Equal(t, c, gc)
		}
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	_, err := EncodeStudentUUID(-1, 0)
	assert.Error(t, err)
	_, err = EncodeStudentUUID(10000, 0)
	assert.Error(t, err)
	_, err = EncodeStudentUUID(0, -1)
	assert.Error(t, err)
	_, err = EncodeStudentUUID(0, 1000000000000)
	assert.Error(t, err)
}

func TestDecode_RejectsMalformedLayout(t *testing.T) {
	cases := []string{
		"",
		"00000000-0000-0000-0006-03",                    // grup terakhir kurang digit
		"00000000-0000-0000-006-0000000000003",          // grup school salah panjang
		"11111111-0000-0000-0006-000000000003",          // prefix tetap tidak cocok
		"00000000-0000-0000-00a6-000000000003",          // non-digit
		"00000000-0000-0000-0006_000000000003",          // pemisah salah
		"00000000-0000-0000-0006-00000000000x",          // non-digit di class
		"00000000-0000-0000-0006-000000000003-trailing", // kepanjangan
	}
	for _, in := range cases {
		_, _, err := DecodeStudentUUID(in)
		require.Error(t, err, "input %q harus ditolak", in)
		var fe *FormatError
		assert.ErrorAs(t, err, &fe, "input %q", in)
	}
}
