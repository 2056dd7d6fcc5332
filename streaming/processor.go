// Package streaming adapts the core codec onto bounded-concurrency batch and
// channel pipelines. Nothing here changes parse/encode semantics — it is a
// concurrency convenience layered on top of *iso8583.MessageFactory.
package streaming

import (
	"context"
	"log/slog"
	"sync"

	"github.com/avalonpay/iso8583"
)

// Processor unpacks raw byte slices into *iso8583.Message structs using a
// bounded pool of goroutines, the way this package's predecessor's batch
// processor did, now driven by a *iso8583.MessageFactory instead
// of a packager.
type Processor struct {
	factory     *iso8583.MessageFactory
	headerLen   int
	concurrency int
	logger      *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent parse goroutines.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) { p.concurrency = n }
}

// WithLogger attaches a structured logger for per-message parse failures.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a Processor bound to factory, parsing messages whose
// wire form carries a headerLen-byte header before the message type.
func NewProcessor(factory *iso8583.MessageFactory, headerLen int, opts ...ProcessorOption) *Processor {
	p := &Processor{
		factory:     factory,
		headerLen:   headerLen,
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process parses a single raw message.
func (p *Processor) Process(data []byte) (*iso8583.Message, error) {
	return p.factory.Parse(data, p.headerLen)
}

// batchResult pairs a parsed message with its index-preserving error.
type batchResult struct {
	msg *iso8583.Message
	err error
}

// ProcessBatch parses a slice of raw messages concurrently, bounded by the
// processor's concurrency limit, preserving input order in the result slice.
// If any message fails, it returns the error of the lowest-index failure
// together with the results for the messages before it; that entry and all
// later entries are nil.
func (p *Processor) ProcessBatch(ctx context.Context, dataSlice [][]byte) ([]*iso8583.Message, error) {
	results := make([]batchResult, len(dataSlice))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for i, data := range dataSlice {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, msgData []byte) {
			defer wg.Done()
			defer func() { <-semaphore }()

			msg, err := p.factory.Parse(msgData, p.headerLen)
			if err != nil {
				p.logger.Error("parse failed", "index", idx, "error", err)
				results[idx] = batchResult{err: err}
				return
			}
			results[idx] = batchResult{msg: msg}
		}(i, data)
	}

	wg.Wait()

	out := make([]*iso8583.Message, len(results))
	for i, r := range results {
		out[i] = r.msg
		if r.err != nil {
			return out, r.err
		}
	}
	return out, nil
}

// ProcessStream concurrently parses messages from input and sends the parsed
// *iso8583.Message values to output, honoring ctx cancellation on both the
// intake and the send side.
func (p *Processor) ProcessStream(ctx context.Context, input <-chan []byte, output chan<- *iso8583.Message) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()

		case data, ok := <-input:
			if !ok {
				wg.Wait()
				return nil
			}

			wg.Add(1)
			semaphore <- struct{}{}

			go func(msgData []byte) {
				defer wg.Done()
				defer func() { <-semaphore }()

				msg, err := p.factory.Parse(msgData, p.headerLen)
				if err != nil {
					p.logger.Error("parse failed", "error", err)
					return
				}

				select {
				case output <- msg:
				case <-ctx.Done():
				}
			}(data)
		}
	}
}
