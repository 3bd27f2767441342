package prompt

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
	"github.com/bryanwahyu/brand-voice/internal/domain/voice"
)

// WebSearchStrategy grants the model live search before it scores the site.
type WebSearchStrategy struct{}

func (WebSearchStrategy) Name() string { return "web_search" }

func (WebSearchStrategy) Build(_ context.Context, url string) (ai.Request, error) {
	return ai.Request{Prompt: WebSearch(url), WebSearch: true}, nil
}

// BackgroundKnowledgeStrategy relies on what the model already knows.
type BackgroundKnowledgeStrategy struct{}

func (BackgroundKnowledgeStrategy) Name() string { return "background_knowledge" }

func (BackgroundKnowledgeStrategy) Build(_ context.Context, url string) (ai.Request, error) {
	return ai.Request{Prompt: BackgroundKnowledge(url)}, nil
}

// Snapshotter captures readable page content for a URL.
type Snapshotter interface {
	Snapshot(ctx context.Context, url string) (string, error)
}

// PageSnapshotStrategy fetches the page itself and inlines what it finds.
type PageSnapshotStrategy struct {
	Pages Snapshotter
}

func (PageSnapshotStrategy) Name() string { return "page_snapshot" }

func (s PageSnapshotStrategy) Build(ctx context.Context, url string) (ai.Request, error) {
	text, err := s.Pages.Snapshot(ctx, url)
	if err != nil {
		return ai.Request{}, fmt.Errorf("page snapshot: %w", err)
	}
	return ai.Request{Prompt: PageSnapshot(url, text)}, nil
}

// Strategies returns the attempt order: web search first, the optional page
// snapshot next, background knowledge last.
func Strategies(pages Snapshotter) []voice.Strategy {
	list := []voice.Strategy{WebSearchStrategy{}}
	if pages != nil {
		list = append(list, PageSnapshotStrategy{Pages: pages})
	}
	return append(list, BackgroundKnowledgeStrategy{})
}
