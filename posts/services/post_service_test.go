package services

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solstack/site/internal/content"
	postsErrors "github.com/solstack/site/posts/errors"
	"github.com/solstack/site/posts/repository"
)

// Happy paths run against the real content repository; the index is pure
// in-memory state. The mock only covers failures the index cannot produce.
func newTestService(t *testing.T) PostService {
	t.Helper()

	fsys := fstest.MapFS{
		"posts/first-post.md": &fstest.MapFile{Data: []byte(`---
title: First Post
date: 2022-05-01
published: true
---

First body.
`)},
		"posts/second-post.md": &fstest.MapFile{Data: []byte(`---
title: Second Post
date: 2023-02-14
published: true
---

Second body.
`)},
		"posts/quiet-draft.md": &fstest.MapFile{Data: []byte(`---
title: Quiet Draft
date: 2024-06-30
published: false
---

Draft body.
`)},
	}

	index, err := content.LoadFS(fsys)
	require.NoError(t, err)

	return NewPostService(repository.NewContentRepository(index))
}

func TestGetPostBySlug(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	t.Run("PublishedPostResolves", func(t *testing.T) {
		post, err := service.GetPostBySlug(ctx, "first-post")
		require.NoError(t, err)
		assert.Equal(t, "First Post", post.Title)
	})

	t.Run("DraftResolvesByDirectSlug", func(t *testing.T) {
		post, err := service.GetPostBySlug(ctx, "quiet-draft")
		require.NoError(t, err)
		assert.False(t, post.Published)
	})

	t.Run("UnknownSlugIsNotFound", func(t *testing.T) {
		_, err := service.GetPostBySlug(ctx, "does-not-exist")
		assert.ErrorIs(t, err, postsErrors.ErrPostNotFound)
	})

	t.Run("SlugMatchIsExact", func(t *testing.T) {
		_, err := service.GetPostBySlug(ctx, "First-Post")
		assert.ErrorIs(t, err, postsErrors.ErrPostNotFound)

		_, err = service.GetPostBySlug(ctx, "first-post/")
		assert.ErrorIs(t, err, postsErrors.ErrPostNotFound)
	})

	t.Run("BlankSlugIsInvalid", func(t *testing.T) {
		_, err := service.GetPostBySlug(ctx, "  ")
		assert.ErrorIs(t, err, postsErrors.ErrInvalidSlug)
	})
}

func TestGetPostBySlug_RepositoryErrorPassesThrough(t *testing.T) {
	mockRepo := new(MockPostRepository)
	boom := errors.New("index unavailable")
	mockRepo.On("FindBySlug", mock.Anything, "first-post").Return(nil, boom)

	service := NewPostService(mockRepo)
	_, err := service.GetPostBySlug(context.Background(), "first-post")

	assert.ErrorIs(t, err, boom)
	mockRepo.AssertExpectations(t)
}

func TestListPublished(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	posts, err := service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "second-post", posts[0].Slug)
	assert.Equal(t, "first-post", posts[1].Slug)
	for _, post := range posts {
		assert.True(t, post.Published)
	}
}

func TestListPublished_WrapsRepositoryError(t *testing.T) {
	mockRepo := new(MockPostRepository)
	boom := errors.New("listing unavailable")
	mockRepo.On("FindPublished", mock.Anything).Return(nil, boom)

	service := NewPostService(mockRepo)
	_, err := service.ListPublished(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to list published posts")
	mockRepo.AssertExpectations(t)
}
