package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/metrics"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/rs/zerolog"
)

// Front page slices, as offsets into the latest-published ordering
const (
	homeLatestOffset   = 1
	homeLatestCount    = 4
	homeFeaturedOffset = 6
	homeFeaturedCount  = 4
	homeMoreOffset     = 11
	homeMoreCount      = 11
	searchLimit        = 50
)

// newsService implements NewsService
type newsService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	cfg      config.ContentConfig
	log      zerolog.Logger
}

func newNewsService(articles repository.ArticleRepository, comments repository.CommentRepository, cfg config.ContentConfig, log zerolog.Logger) *newsService {
	return &newsService{
		articles: articles,
		comments: comments,
		cfg:      cfg,
		log:      log.With().Str("service", "news").Logger(),
	}
}

// Home assembles the front page feeds
func (s *newsService) Home(ctx context.Context) (*models.HomeFeed, error) {
	feed := &models.HomeFeed{}

	lead, err := s.list(ctx, models.OrderNewest, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(lead) > 0 {
		feed.Lead = lead[0]
	}

	if feed.Latest, err = s.list(ctx, models.OrderLatestPublish, homeLatestOffset, homeLatestCount); err != nil {
		return nil, err
	}
	if feed.Featured, err = s.list(ctx, models.OrderLatestPublish, homeFeaturedOffset, homeFeaturedCount); err != nil {
		return nil, err
	}
	if feed.More, err = s.list(ctx, models.OrderNewest, homeMoreOffset, homeMoreCount); err != nil {
		return nil, err
	}
	if feed.MostRead, err = s.MostRead(ctx, s.cfg.MostReadCount); err != nil {
		return nil, err
	}
	return feed, nil
}

// List returns a page of published articles, optionally limited to a category
func (s *newsService) List(ctx context.Context, page, pageSize int, categoryID int64) (*models.ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	filter := models.ArticleFilter{
		CategoryID:    categoryID,
		PublishedOnly: true,
		OrderBy:       models.OrderNewest,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	}

	total, err := s.articles.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	items, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return &models.ArticlePage{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// Detail records a view of the published article with the given slug and
// returns it with its surrounding reader context
func (s *newsService) Detail(ctx context.Context, slug string) (*models.ArticleDetail, error) {
	article, err := s.articles.IncrementViews(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	if article == nil {
		return nil, models.ErrNotFound
	}
	metrics.ArticleViewsTotal.Inc()

	detail := &models.ArticleDetail{Article: article}

	if detail.Comments, err = s.comments.ListApproved(ctx, article.ID, models.LatestCommentsOnDetail); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if detail.CommentsCount, err = s.comments.CountApproved(ctx, article.ID); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if detail.Next, err = s.articles.Next(ctx, article.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to get next article: %w", err)
	}
	if detail.Previous, err = s.articles.Previous(ctx, article.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to get previous article: %w", err)
	}
	if detail.MostRead, err = s.MostRead(ctx, s.cfg.MostReadCount); err != nil {
		return nil, err
	}

	s.log.Debug().Str("slug", slug).Int64("views", article.Views).Msg("Article viewed")
	return detail, nil
}

// Search matches q case-insensitively against title and content of
// published articles. A blank query yields no results.
func (s *newsService) Search(ctx context.Context, q string) ([]*models.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*models.Article{}, nil
	}

	results, err := s.articles.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	return results, nil
}

// MostRead returns the n published articles with the most views
func (s *newsService) MostRead(ctx context.Context, n int) ([]*models.Article, error) {
	if n <= 0 {
		return []*models.Article{}, nil
	}
	return s.list(ctx, models.OrderMostViewed, 0, n)
}

func (s *newsService) list(ctx context.Context, order string, offset, limit int) ([]*models.Article, error) {
	items, err := s.articles.List(ctx, models.ArticleFilter{
		PublishedOnly: true,
		OrderBy:       order,
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return items, nil
}
