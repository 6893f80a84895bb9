package service_test

import (
	"context"
	"testing"

	"github.com/news-portal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Submit(t *testing.T) {
	tests := []struct {
		name        string
		autoApprove bool
	}{
		{"held for moderation", false},
		{"auto approved", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig(tt.autoApprove))
			article := f.createArticle(t, "Commented", "")

			comment, err := f.svc.Comment.Submit(context.Background(), article.Slug, &models.CommentForm{
				Name: " Ann ", Email: "ann@example.com", Message: "Great read",
			})
			require.NoError(t, err)

			assert.Equal(t, "Ann", comment.Name)
			assert.Equal(t, article.ID, comment.ArticleID)
			assert.Equal(t, tt.autoApprove, comment.IsApproved)
			assert.Len(t, f.db.Comments, 1)
		})
	}
}

func TestCommentService_SubmitRejected(t *testing.T) {
	f := newFixture(t, testConfig(true))
	article := f.createArticle(t, "Commented", "")
	ctx := context.Background()

	_, err := f.svc.Comment.Submit(ctx, article.Slug, &models.CommentForm{Name: "Ann", Email: "ann@example.com"})
	require.Error(t, err)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "message")

	_, err = f.svc.Comment.Submit(ctx, article.Slug, &models.CommentForm{Name: "Ann", Email: "ann@example.com", Message: "   \n\t"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "message")

	_, err = f.svc.Comment.Submit(ctx, article.Slug, &models.CommentForm{Name: "Ann", Email: "not-an-email", Message: "hi"})
	assert.True(t, models.IsValidationError(err))

	_, err = f.svc.Comment.Submit(ctx, "missing-slug", &models.CommentForm{Name: "Ann", Email: "ann@example.com", Message: "hi"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Empty(t, f.db.Comments)
}

func TestCommentService_Moderation(t *testing.T) {
	f := newFixture(t, testConfig(false))
	ctx := context.Background()
	article := f.createArticle(t, "Moderated", "")

	var ids []string
	for _, msg := range []string{"one", "two"} {
		c, err := f.svc.Comment.Submit(ctx, article.Slug, &models.CommentForm{Name: "Bo", Email: "bo@example.com", Message: msg})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	pending, err := f.svc.Comment.List(ctx, boolPtr(false))
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	visible, err := f.svc.Comment.ListForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	n, err := f.svc.Comment.SetApproved(ctx, ids, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	visible, err = f.svc.Comment.ListForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	_, err = f.svc.Comment.SetApproved(ctx, nil, true)
	assert.True(t, models.IsValidationError(err))
}

func TestContactService_Submit(t *testing.T) {
	f := newFixture(t, testConfig(false))
	ctx := context.Background()

	msg, err := f.svc.Contact.Submit(ctx, &models.ContactForm{
		Name: "Ann", Email: "ann@example.com", Subject: "Tip", Message: "Check this out",
	})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)
	assert.Len(t, f.db.Contacts, 1)

	unread, err := f.svc.Contact.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	n, err := f.svc.Contact.SetRead(ctx, []string{msg.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err = f.svc.Contact.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestContactService_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		form  models.ContactForm
		field string
	}{
		{"no name", models.ContactForm{Email: "a@b.co", Subject: "s", Message: "m"}, "name"},
		{"no email", models.ContactForm{Name: "n", Subject: "s", Message: "m"}, "email"},
		{"no subject", models.ContactForm{Name: "n", Email: "a@b.co", Message: "m"}, "subject"},
		{"no message", models.ContactForm{Name: "n", Email: "a@b.co", Subject: "s"}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig(false))

			_, err := f.svc.Contact.Submit(context.Background(), &tt.form)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Empty(t, f.db.Contacts)
		})
	}
}
