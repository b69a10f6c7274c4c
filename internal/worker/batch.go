package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fnolabs/crashtriage/internal/model"
)

// Processor runs one accident event through the pipeline.
type Processor interface {
	Process(ctx context.Context, ev *model.AccidentEvent) (*model.IncidentReport, error)
}

// EventJob processes a single accident event.
type EventJob struct {
	Line      int
	Event     *model.AccidentEvent
	Processor Processor
}

// Execute runs the event through the processor.
func (j *EventJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.Process(ctx, j.Event)
	return &EventResult{
		Line:   j.Line,
		Report: report,
		Error:  err,
	}
}

// EventResult is the outcome of processing one event.
type EventResult struct {
	Line   int
	Report *model.IncidentReport
	Error  error
}

// GetError returns the processing error, if any.
func (r *EventResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple accident events concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessEvents processes the events concurrently through the pool.
func (b *BatchProcessor) ProcessEvents(ctx context.Context, events []*model.AccidentEvent) []*EventResult {
	if len(events) == 0 {
		return []*EventResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, ev := range events {
		pool.Submit(&EventJob{
			Line:      i + 1,
			Event:     ev,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	eventResults := make([]*EventResult, len(results))
	for i, result := range results {
		eventResults[i] = result.(*EventResult)
	}

	return eventResults
}

// ProcessFile reads telemetry events from a file and processes them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*EventResult, error) {
	events, err := ReadEventsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	return b.ProcessEvents(ctx, events), nil
}

// ReadEventsFromFile reads one JSON accident event per line. Empty lines
// and lines starting with # are skipped.
func ReadEventsFromFile(filePath string) ([]*model.AccidentEvent, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var events []*model.AccidentEvent

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var ev model.AccidentEvent
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return nil, fmt.Errorf("line %d: decode event: %w", line, err)
		}
		events = append(events, &ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return events, nil
}
