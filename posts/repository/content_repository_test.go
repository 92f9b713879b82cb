package repository_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstack/site/internal/content"
	postsErrors "github.com/solstack/site/posts/errors"
	"github.com/solstack/site/posts/repository"
)

func newTestRepository(t *testing.T) repository.PostRepository {
	t.Helper()

	fsys := fstest.MapFS{
		"posts/older-post.md": &fstest.MapFile{Data: []byte(`---
title: Older Post
date: 2022-03-10
published: true
---

Older body.
`)},
		"posts/newer-post.md": &fstest.MapFile{Data: []byte(`---
title: Newer Post
date: 2023-07-01
published: true
---

Newer body.
`)},
		"posts/hidden-draft.md": &fstest.MapFile{Data: []byte(`---
title: Hidden Draft
date: 2024-01-05
published: false
---

Draft body.
`)},
	}

	index, err := content.LoadFS(fsys)
	require.NoError(t, err)

	return repository.NewContentRepository(index)
}

func TestContentRepository_FindBySlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post, err := repo.FindBySlug(ctx, "newer-post")
	require.NoError(t, err)
	assert.Equal(t, "Newer Post", post.Title)
	assert.True(t, post.Published)
}

func TestContentRepository_FindBySlug_IsCaseSensitive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.FindBySlug(ctx, "Newer-Post")
	assert.ErrorIs(t, err, postsErrors.ErrPostNotFound)
}

func TestContentRepository_FindBySlug_UnknownSlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.FindBySlug(ctx, "does-not-exist")
	assert.ErrorIs(t, err, postsErrors.ErrPostNotFound)
	assert.True(t, postsErrors.IsNotFound(err))
}

func TestContentRepository_FindBySlug_ReturnsDrafts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post, err := repo.FindBySlug(ctx, "hidden-draft")
	require.NoError(t, err)
	assert.False(t, post.Published)
}

func TestContentRepository_FindPublished(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	posts, err := repo.FindPublished(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Newest first, drafts excluded
	assert.Equal(t, "newer-post", posts[0].Slug)
	assert.Equal(t, "older-post", posts[1].Slug)
}
