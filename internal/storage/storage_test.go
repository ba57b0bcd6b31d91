package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("pngdata"), PutInput{Filename: "Ghost Pepper.PNG", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(b))

	require.NoError(t, l.Delete(ctx, res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	require.NoError(t, l.Delete(ctx, res.Key))
}

func TestLocal_DatedKeys(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")
	l.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }

	res, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "label.exe"})
	require.NoError(t, err)
	assert.Regexp(t, `^2026/03/[0-9a-f-]{36}$`, res.Key)

	entries, err := os.ReadDir(filepath.Join(dir, "2026", "03"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".upload-"))
}

func TestLocal_PutTooLarge(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	big := strings.NewReader(strings.Repeat("x", MaxImageBytes+1))
	_, err := l.Put(context.Background(), big, PutInput{Filename: "big.png"})
	assert.ErrorIs(t, err, ErrTooLarge)

	var files []string
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	assert.Empty(t, files)
}

func TestLocal_DeleteStaysInBaseDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	l := NewLocal(dir, "/uploads")
	assert.Error(t, l.Delete(context.Background(), "../"+filepath.Base(outside)))
	assert.Error(t, l.Delete(context.Background(), "2026/../../"+filepath.Base(outside)))
	assert.Error(t, l.Delete(context.Background(), ""))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestCheckImage(t *testing.T) {
	ct, err := CheckImage("hero.jpg", "image/jpeg", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	ct, err = CheckImage("hero.webp", "", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", ct)

	_, err = CheckImage("notes.pdf", "application/pdf", 10)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = CheckImage("fake.png", "text/html", 10)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = CheckImage("big.png", "image/png", MaxImageBytes+1)
	assert.ErrorIs(t, err, ErrTooLarge)
}
