package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/media"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func TestUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	svc := media.NewService(testutil.NewDB(t), storage.NewLocal(dir, "/uploads"), testutil.Logger())
	ctx := context.Background()

	it, err := svc.Upload(ctx, strings.NewReader("gifdata"), media.UploadInput{
		Filename:    "../../label.gif",
		ContentType: "image/gif",
		Size:        7,
		AltText:     " Bottle label ",
		UploadedBy:  "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "label.gif", it.Filename)
	assert.Equal(t, "image/gif", it.ContentType)
	assert.Equal(t, "Bottle label", it.AltText)
	assert.Equal(t, "/uploads/"+it.StorageKey, it.URL)
	assert.FileExists(t, filepath.Join(dir, it.StorageKey))

	it, err = svc.UpdateAlt(ctx, it.ID, "Front label")
	require.NoError(t, err)
	assert.Equal(t, "Front label", it.AltText)

	res, err := svc.List(ctx, media.ListParams{Q: "front"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	require.NoError(t, svc.Delete(ctx, it.ID))
	_, err = os.Stat(filepath.Join(dir, it.StorageKey))
	assert.True(t, os.IsNotExist(err))
	assert.ErrorIs(t, svc.Delete(ctx, it.ID), media.ErrNotFound)
}

func TestUploadRejects(t *testing.T) {
	dir := t.TempDir()
	svc := media.NewService(testutil.NewDB(t), storage.NewLocal(dir, "/uploads"), nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, strings.NewReader("x"), media.UploadInput{Filename: "notes.txt", ContentType: "text/plain", Size: 1})
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)

	_, err = svc.Upload(ctx, strings.NewReader("x"), media.UploadInput{Filename: "huge.png", Size: storage.MaxImageBytes + 1})
	assert.ErrorIs(t, err, storage.ErrTooLarge)

	entries, err := os.ReadDir(dir)
	if err == nil {
		assert.Empty(t, entries)
	}
}
