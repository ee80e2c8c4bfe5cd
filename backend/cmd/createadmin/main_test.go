package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPassword(t *testing.T) {
	got, err := confirmPassword("secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	_, err = confirmPassword("secret", "other")
	assert.Error(t, err)

	_, err = confirmPassword("", "")
	assert.Error(t, err)
}

func TestReadPasswordFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pw")
	require.NoError(t, os.WriteFile(path, []byte("s3cret!\n"), 0o600))

	got, err := readPasswordFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", got)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	_, err = readPasswordFile(empty)
	assert.Error(t, err)

	_, err = readPasswordFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestPrompt(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  admin@example.com \nИванов"))
	login, err := prompt(in, "")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", login)

	name, err := prompt(in, "")
	require.NoError(t, err)
	assert.Equal(t, "Иванов", name)
}
