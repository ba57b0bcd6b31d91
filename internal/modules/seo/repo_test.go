package seo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
		err      bool
	}{
		{"/", "/", false},
		{" /shop/ ", "/shop", false},
		{"/blog/post?utm=x#top", "/blog/post", false},
		{"///", "/", false},
		{"shop", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := seo.NormalizePath(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, seo.ErrInvalidPath, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestUpsert(t *testing.T) {
	repo := seo.NewRepo(testutil.NewDB(t))
	ctx := context.Background()

	first, err := repo.Upsert(ctx, seo.Input{PagePath: "/shop/", Title: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, "/shop", first.PagePath)

	second, err := repo.Upsert(ctx, seo.Input{PagePath: "/shop?sort=heat", Title: "All Sauces", Description: "Every bottle."})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "All Sauces", second.Title)
	assert.Equal(t, "Every bottle.", second.Description)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByPath(ctx, "/about")
	assert.ErrorIs(t, err, seo.ErrNotFound)
	_, err = repo.Upsert(ctx, seo.Input{PagePath: "about"})
	assert.ErrorIs(t, err, seo.ErrInvalidPath)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), seo.ErrNotFound)
}
