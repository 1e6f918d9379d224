// Package search turns raw keystroke text into rate-limited provider
// queries, one controller per slot. The two controllers share nothing.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"CoinCompare/internal/model"
	"CoinCompare/internal/provider"
	"CoinCompare/internal/recorder"
)

// SelectFunc commits a picked candidate as the slot's selection.
type SelectFunc func(slot model.Slot, sel *model.Selection) error

// Options tune a controller. Zero values fall back to the spec defaults.
type Options struct {
	Debounce     time.Duration // quiet period before a query fires
	MinQueryLen  int           // shorter input clears candidates without querying
	MaxResults   int           // candidates kept from the top of the response
	QueryTimeout time.Duration // bound on each provider call
}

func (o *Options) applyDefaults() {
	if o.Debounce == 0 {
		o.Debounce = 300 * time.Millisecond
	}
	if o.MinQueryLen == 0 {
		o.MinQueryLen = 2
	}
	if o.MaxResults == 0 {
		o.MaxResults = 5
	}
	if o.QueryTimeout == 0 {
		o.QueryTimeout = 10 * time.Second
	}
}

// Controller debounces input for one slot and maintains its candidate
// list. A single pending timer handle is owned per controller; each new
// input cancels and replaces it (trailing-edge debounce).
type Controller struct {
	slot     model.Slot
	provider provider.SearchProvider
	rec      recorder.Recorder
	onSelect SelectFunc
	opts     Options
	ctx      context.Context

	mu         sync.Mutex
	timer      *time.Timer
	seq        uint64 // bumped per input; responses for older sequences are dropped
	text       string
	candidates []model.SearchCandidate
}

// NewController creates the controller for one slot.
func NewController(ctx context.Context, slot model.Slot, p provider.SearchProvider, rec recorder.Recorder, onSelect SelectFunc, opts Options) *Controller {
	opts.applyDefaults()
	return &Controller{
		slot:     slot,
		provider: p,
		rec:      rec,
		onSelect: onSelect,
		opts:     opts,
		ctx:      ctx,
	}
}

// OnInput handles a keystroke-level text change. Input shorter than the
// minimum clears candidates immediately without contacting the provider;
// anything else schedules a query after the quiet period, restarting the
// timer on every new input.
func (c *Controller) OnInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < c.opts.MinQueryLen {
		c.candidates = nil
		return
	}

	seq := c.seq
	c.timer = time.AfterFunc(c.opts.Debounce, func() {
		c.query(seq, trimmed)
	})
}

// query runs the provider call for one debounced input. Failures degrade
// silently: the previous candidate list stays visible.
func (c *Controller) query(seq uint64, text string) {
	ctx, cancel := context.WithTimeout(c.ctx, c.opts.QueryTimeout)
	defer cancel()

	results, err := c.provider.Search(ctx, text)
	if err != nil {
		log.Printf("[WARN] slot %s search %q: %v", c.slot, text, err)
		if recErr := c.rec.RecordSearchFailure(&recorder.SearchFailure{
			Slot: string(c.slot), Query: text, Error: err.Error(),
		}); recErr != nil {
			log.Printf("[ERROR] record search failure: %v", recErr)
		}
		return
	}

	if len(results) > c.opts.MaxResults {
		results = results[:c.opts.MaxResults]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// Superseded by newer input while the request was in flight.
		return
	}
	c.candidates = results
}

// Candidates returns a copy of the current candidate list.
func (c *Controller) Candidates() []model.SearchCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.SearchCandidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// Text returns the current raw input text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Pick commits a candidate as the slot's selection, clearing the input
// text and the candidate list.
func (c *Controller) Pick(cand model.SearchCandidate) error {
	c.mu.Lock()
	c.text = ""
	c.candidates = nil
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	sel := model.SelectionOf(cand)
	return c.onSelect(c.slot, &sel)
}
