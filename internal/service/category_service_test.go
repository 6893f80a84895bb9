package service_test

import (
	"context"
	"testing"

	"github.com/news-portal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_DeleteCascades(t *testing.T) {
	f := newFixture(t, testConfig(true))
	ctx := context.Background()

	article := f.createArticle(t, "Doomed", "")
	_, err := f.svc.Comment.Submit(ctx, article.Slug, &models.CommentForm{Name: "A", Email: "a@example.com", Message: "bye"})
	require.NoError(t, err)

	other, err := f.svc.Category.Create(ctx, "Culture")
	require.NoError(t, err)
	survivor, err := f.svc.Article.Create(ctx, &models.ArticleInput{Title: "Survivor", CategoryID: other.ID}, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Category.Delete(ctx, f.categoryID))

	assert.NotContains(t, f.db.Articles, article.ID)
	assert.Contains(t, f.db.Articles, survivor.Article.ID)
	assert.Empty(t, f.db.Comments)

	assert.ErrorIs(t, f.svc.Category.Delete(ctx, f.categoryID), models.ErrNotFound)
}

func TestCategoryService_CreateAndList(t *testing.T) {
	f := newFixture(t, testConfig(false))
	ctx := context.Background()

	_, err := f.svc.Category.Create(ctx, "Business")
	require.NoError(t, err)
	f.createArticle(t, "In world", "")

	_, err = f.svc.Category.Create(ctx, "World")
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = f.svc.Category.Create(ctx, "  ")
	assert.True(t, models.IsValidationError(err))

	categories, err := f.svc.Category.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Business", categories[0].Name)
	assert.Equal(t, 0, categories[0].NewsCount)
	assert.Equal(t, "World", categories[1].Name)
	assert.Equal(t, 1, categories[1].NewsCount)
}

func TestAuthorService_DeleteKeepsArticles(t *testing.T) {
	f := newFixture(t, testConfig(false))
	ctx := context.Background()

	author, err := f.svc.Author.Create(ctx, &models.User{Username: "editor", Email: "editor@example.com"})
	require.NoError(t, err)

	res, err := f.svc.Article.Create(ctx, &models.ArticleInput{Title: "Bylined", CategoryID: f.categoryID, AuthorID: &author.ID}, nil)
	require.NoError(t, err)
	require.NotNil(t, f.db.Articles[res.Article.ID].AuthorID)

	require.NoError(t, f.svc.Author.Delete(ctx, author.ID))

	require.Contains(t, f.db.Articles, res.Article.ID)
	assert.Nil(t, f.db.Articles[res.Article.ID].AuthorID)
}
