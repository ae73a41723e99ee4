package emails_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"office-pump/internal/emails"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logText = `2024-01-02 09:00 sent report to Jane.Doe@Example.com, cc ops@example.org.
2024-01-02 09:05 bounce from jane.doe@example.com
2024-01-02 09:06 nothing here, not@an-address
2024-01-02 09:07 retry a+b@sub.example.co.uk;ops@example.org
`

func TestExtract(t *testing.T) {
	lists, err := emails.Extract(strings.NewReader(logText))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"jane.doe@example.com",
		"ops@example.org",
		"jane.doe@example.com",
		"a+b@sub.example.co.uk",
		"ops@example.org",
	}, lists.All)
	assert.Equal(t, []string{
		"a+b@sub.example.co.uk",
		"jane.doe@example.com",
		"ops@example.org",
	}, lists.Unique)
}

func TestExtract_Empty(t *testing.T) {
	lists, err := emails.Extract(strings.NewReader("no addresses\n"))
	require.NoError(t, err)
	assert.Empty(t, lists.All)
	assert.Empty(t, lists.Unique)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mail.log")
	require.NoError(t, os.WriteFile(in, []byte(logText), 0o644))

	lists, err := emails.ExtractFile(in)
	require.NoError(t, err)

	allPath, uniquePath, err := lists.Save(filepath.Join(dir, "out"))
	require.NoError(t, err)

	all, err := os.ReadFile(allPath)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(all), "\n"))

	unique, err := os.ReadFile(uniquePath)
	require.NoError(t, err)
	assert.Equal(t, "a+b@sub.example.co.uk\njane.doe@example.com\nops@example.org\n", string(unique))

	_, err = emails.ExtractFile(filepath.Join(dir, "missing.log"))
	assert.Error(t, err)
}
