package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func TestCreateValidation(t *testing.T) {
	repo := blog.NewRepo(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "", blog.Input{Title: " ", Kind: "poem", Status: "live"})
	var ve *blog.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "kind")
	assert.Contains(t, ve.Fields, "status")

	p, err := repo.Create(ctx, "", blog.Input{Title: "Fermenting Habaneros at Home"})
	require.NoError(t, err)
	assert.Equal(t, "fermenting-habaneros-at-home", p.Slug)
	assert.Equal(t, blog.KindArticle, p.Kind)
	assert.Equal(t, blog.StatusDraft, p.Status)
	assert.Nil(t, p.PublishedAt)
	assert.Nil(t, p.AuthorID)

	_, err = repo.Create(ctx, "", blog.Input{Title: "Other", Slug: "fermenting-habaneros-at-home"})
	assert.ErrorIs(t, err, blog.ErrDuplicateSlug)
}

func TestPublishedAtIsSetOnce(t *testing.T) {
	repo := blog.NewRepo(testutil.NewDB(t))
	ctx := context.Background()

	in := blog.Input{Title: "Green Sauce", Kind: blog.KindRecipe, Status: blog.StatusPublished}
	p, err := repo.Create(ctx, "author-1", in)
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	first := *p.PublishedAt

	in.Status = blog.StatusDraft
	p, err = repo.Update(ctx, p.ID, in)
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)

	in.Status = blog.StatusPublished
	in.Title = "Green Sauce, Revised"
	p, err = repo.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Green Sauce, Revised", p.Title)
	assert.Equal(t, "green-sauce", p.Slug)
	assert.WithinDuration(t, first, *p.PublishedAt, time.Millisecond)

	in.Slug = "green-sauce-revised"
	p, err = repo.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "green-sauce-revised", p.Slug)
}

func TestPublishedListing(t *testing.T) {
	repo := blog.NewRepo(testutil.NewDB(t))
	ctx := context.Background()

	for _, in := range []blog.Input{
		{Title: "Salsa Roja", Kind: blog.KindRecipe, Status: blog.StatusPublished},
		{Title: "Scoville Explained", Status: blog.StatusPublished},
		{Title: "Unfinished Draft"},
	} {
		_, err := repo.Create(ctx, "", in)
		require.NoError(t, err)
	}

	res, err := repo.ListPublished(ctx, blog.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	res, err = repo.ListPublished(ctx, blog.ListParams{Kind: blog.KindRecipe})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	assert.Equal(t, "salsa-roja", res.Items[0].Slug)

	res, err = repo.List(ctx, blog.ListParams{Q: "draft"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	_, err = repo.GetPublishedBySlug(ctx, "unfinished-draft")
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = repo.GetPublishedBySlug(ctx, "scoville-explained")
	assert.NoError(t, err)

	_, err = repo.Update(ctx, "missing", blog.Input{Title: "x"})
	assert.ErrorIs(t, err, blog.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), blog.ErrNotFound)
}
