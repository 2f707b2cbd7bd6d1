package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"idea-miner/internal/domain"
)

const (
	searchListingLimit = 25
	maxPosts           = 15
	maxCommentsPerPost = 20
	commentFetchers    = 4

	unknownAuthor = "unknown"
)

// Gatherer turns listing data into the typed quote corpus the pipeline
// consumes. Posts keep listing order and each post's quote precedes its
// comments, so the corpus order is deterministic even though comment
// threads are fetched concurrently.
type Gatherer struct {
	client *Client
	logger *slog.Logger
}

// NewGatherer wires a gatherer over the reddit client.
func NewGatherer(client *Client, logger *slog.Logger) *Gatherer {
	return &Gatherer{client: client, logger: logger}
}

var _ domain.Gatherer = (*Gatherer)(nil)

// Gather fetches the search listing and the comment threads of the top
// posts, normalizes and bounds every text, and drops records with empty
// bodies or a pinned flag. Records missing an id or subreddit are skipped
// at the boundary.
func (g *Gatherer) Gather(ctx context.Context, q domain.Query) ([]domain.Quote, error) {
	l, err := g.client.FetchSearch(ctx, q, searchListingLimit)
	if err != nil {
		return nil, fmt.Errorf("search fetch failed: %w", err)
	}

	var posts []rawPost
	for _, child := range l.Data.Children {
		p := child.Data
		if p.ID == "" || p.Subreddit == "" {
			continue
		}
		posts = append(posts, p)
		if len(posts) == maxPosts {
			break
		}
	}

	threads := make([][]rawComment, len(posts))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(commentFetchers)
	for i, p := range posts {
		eg.Go(func() error {
			comments, err := g.client.FetchComments(egCtx, p.ID)
			if err != nil {
				return fmt.Errorf("comments fetch failed for post %s: %w", p.ID, err)
			}
			threads[i] = comments
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var quotes []domain.Quote
	for i, p := range posts {
		if text := domain.Normalize(p.Selftext); text != "" {
			quotes = append(quotes, domain.Quote{
				Kind:       domain.QuoteKindPost,
				Text:       domain.Truncate(text, domain.MaxPostTextLength),
				Subreddit:  p.Subreddit,
				PostID:     p.ID,
				Author:     authorOr(p.Author),
				Score:      p.Score,
				CreatedUTC: int64(p.CreatedUTC),
				Permalink:  p.Permalink,
			})
		}

		for _, c := range topComments(threads[i]) {
			text := domain.Normalize(c.Body)
			if text == "" {
				continue
			}
			quotes = append(quotes, domain.Quote{
				Kind:       domain.QuoteKindComment,
				Text:       domain.Truncate(text, domain.MaxCommentTextLength),
				Subreddit:  p.Subreddit,
				PostID:     p.ID,
				CommentID:  c.ID,
				Author:     authorOr(c.Author),
				Score:      c.Score,
				CreatedUTC: int64(c.CreatedUTC),
				Permalink:  c.Permalink,
			})
		}
	}

	g.logger.Info("quotes_gathered",
		slog.String("keyword", q.Keyword),
		slog.Int("posts", len(posts)),
		slog.Int("quotes", len(quotes)))

	return quotes, nil
}

// topComments filters pinned and empty comments, orders the rest by score
// descending (stable, so equal scores keep thread order) and keeps the top
// maxCommentsPerPost.
func topComments(comments []rawComment) []rawComment {
	kept := make([]rawComment, 0, len(comments))
	for _, c := range comments {
		if c.Stickied || c.Body == "" {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if len(kept) > maxCommentsPerPost {
		kept = kept[:maxCommentsPerPost]
	}
	return kept
}

func authorOr(author string) string {
	if author == "" {
		return unknownAuthor
	}
	return author
}
