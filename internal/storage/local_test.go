package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accents and parens", "relatório (1).pdf", "relat_rio__1_.pdf"},
		{"already clean", "comprovante.pdf", "comprovante.pdf"},
		{"spaces", "nota fiscal 2024.png", "nota_fiscal_2024.png"},
		{"slashes", "a/b\\c.jpg", "a_b_c.jpg"},
		{"keeps underscore dot dash", "a_b-c.d", "a_b-c.d"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilenameOnlySafeChars(t *testing.T) {
	out := SanitizeFilename("ção à~!@#$%^&*()+=[]{};'\",<>?.txt")
	for _, r := range out {
		safe := r == '_' || r == '.' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, safe, "unsafe char %q in %q", r, out)
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "42_recibo_01.pdf", ObjectKey(42, "recibo 01.pdf"))
}

func TestRemoveByPrefix(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	bucket := filepath.Join(dir, BucketProofs)
	require.NoError(t, os.MkdirAll(bucket, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bucket, "7_old.pdf"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bucket, "7_older.png"), []byte("older"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bucket, "70_other.pdf"), []byte("keep"), 0644))

	require.NoError(t, store.RemoveByPrefix(BucketProofs, "7_"))

	keys, err := store.ListByPrefix(BucketProofs, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"70_other.pdf"}, keys)
}

func TestListByPrefixMissingBucket(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	keys, err := store.ListByPrefix("nope", "1_")
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPublicURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	url := store.PublicURL("http://localhost:8080/", BucketProofs, "3_recibo.pdf")
	assert.Equal(t, "http://localhost:8080/files/proofs/3_recibo.pdf", url)
}
