// Package quotes supplies the motivational quote shown under the timer.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"
)

// ErrNoQuotes indicates a source that answered with an empty list.
var ErrNoQuotes = errors.New("no quotes returned")

// Quote is a single quotation.
type Quote struct {
	Text   string
	Author string
}

// Source fetches quotes.
type Source interface {
	Fetch(ctx context.Context) ([]Quote, error)
}

// Fallback is used whenever no source is reachable.
var Fallback = []Quote{
	{Text: "The journey of a thousand miles begins with a single step.", Author: "Lao Tzu"},
	{Text: "Focus on being productive instead of busy.", Author: "Tim Ferriss"},
	{Text: "Productivity is never an accident. It is always the result of a commitment to excellence.", Author: "Paul J. Meyer"},
	{Text: "The key is not to prioritize what's on your schedule, but to schedule your priorities.", Author: "Stephen Covey"},
	{Text: "You don't need to see the whole staircase, just take the first step.", Author: "Martin Luther King Jr."},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Text: "Your time is limited, so don't waste it living someone else's life.", Author: "Steve Jobs"},
	{Text: "The future depends on what you do today.", Author: "Mahatma Gandhi"},
}

// HTTPSource reads quotes from a quotable-compatible JSON endpoint.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

type quotablePage struct {
	Results []struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	} `json:"results"`
}

// Fetch requests the quote list.
func (source *HTTPSource) Fetch(ctx context.Context) ([]Quote, error) {
	if source.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, source.Timeout)
		defer cancel()
	}
	client := source.Client
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build quotes request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch quotes: unexpected status %s", response.Status)
	}

	var page quotablePage
	if err := json.NewDecoder(response.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	quotes := make([]Quote, 0, len(page.Results))
	for _, result := range page.Results {
		if result.Content == "" {
			continue
		}
		quotes = append(quotes, Quote{Text: result.Content, Author: result.Author})
	}
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}
	return quotes, nil
}

// Loader holds the quotes in use.
type Loader struct {
	mu     sync.Mutex
	source Source
	quotes []Quote
	logger *slog.Logger
	pick   func(n int) int
}

// NewLoader creates a Loader serving Fallback until Load succeeds. A nil
// source keeps it offline.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source: source,
		quotes: Fallback,
		logger: logger,
		pick:   rand.IntN,
	}
}

// Load fetches from the source, keeping Fallback on any error.
func (loader *Loader) Load(ctx context.Context) {
	if loader.source == nil {
		return
	}
	quotes, err := loader.source.Fetch(ctx)
	if err != nil {
		loader.logger.Info("using built-in quotes", "error", err)
		return
	}
	loader.mu.Lock()
	loader.quotes = quotes
	loader.mu.Unlock()
	loader.logger.Debug("quotes loaded", "count", len(quotes))
}

// Quotes returns the quotes in use.
func (loader *Loader) Quotes() []Quote {
	loader.mu.Lock()
	defer loader.mu.Unlock()
	return append([]Quote(nil), loader.quotes...)
}

// Random returns one quote.
func (loader *Loader) Random() Quote {
	loader.mu.Lock()
	defer loader.mu.Unlock()
	return loader.quotes[loader.pick(len(loader.quotes))]
}

// String formats a quote for display.
func (quote Quote) String() string {
	if quote.Author == "" {
		return fmt.Sprintf("%q", quote.Text)
	}
	return fmt.Sprintf("“%s” — %s", quote.Text, quote.Author)
}
