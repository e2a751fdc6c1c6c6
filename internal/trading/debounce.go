package trading

import (
	"context"
	"sync"
	"time"

	"cloudex-trader/internal/models"
)

// SuggestionUpdate carries the suggestions for one settled keystroke burst.
type SuggestionUpdate struct {
	Query       string
	Suggestions []models.Suggestion
}

// SuggestionBox debounces search-as-you-type input. Each keystroke resets a
// timer; only a timer that fires uninterrupted issues the lookup. A generation
// counter enforces last-write-wins: a response whose triggering input is no
// longer current is discarded on arrival, and a closed box suppresses all
// further updates (stale results are a no-op, not an error).
type SuggestionBox struct {
	resolver *Resolver
	delay    time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool

	updates chan SuggestionUpdate
}

// NewSuggestionBox creates a suggestion box with the given debounce delay.
func NewSuggestionBox(resolver *Resolver, delay time.Duration) *SuggestionBox {
	return &SuggestionBox{
		resolver: resolver,
		delay:    delay,
		updates:  make(chan SuggestionUpdate, 8),
	}
}

// Updates returns the channel on which settled suggestion results arrive.
func (b *SuggestionBox) Updates() <-chan SuggestionUpdate {
	return b.updates
}

// SetInput records the latest input, resetting the debounce timer. Any
// in-flight lookup for earlier input becomes stale.
func (b *SuggestionBox) SetInput(ctx context.Context, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.gen++
	gen := b.gen

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, func() {
		b.fire(ctx, gen, text)
	})
}

func (b *SuggestionBox) fire(ctx context.Context, gen uint64, query string) {
	b.mu.Lock()
	stale := b.closed || gen != b.gen
	b.mu.Unlock()
	if stale {
		return
	}

	suggestions, err := b.resolver.Suggest(ctx, query)
	if err != nil {
		// Suggestions are best-effort; a failed lookup shows nothing.
		suggestions = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || gen != b.gen {
		return
	}
	b.updates <- SuggestionUpdate{Query: query, Suggestions: suggestions}
}

// Close stops the timer, suppresses any in-flight results, and closes the
// updates channel.
func (b *SuggestionBox) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
	}
	close(b.updates)
}
