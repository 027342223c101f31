package glyphsvg

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/glyphsvg/internal/parallel"
)

// BatchOptions configures ConvertAll.
type BatchOptions struct {
	// Workers is the number of goroutines. 0 means GOMAXPROCS.
	Workers int

	// Timeout bounds each single conversion. 0 means no limit.
	// A conversion that runs over is reported as failed; its goroutine is
	// left to finish in the background.
	Timeout time.Duration
}

// ConvertAll converts runes in parallel and returns one Result per rune, in
// input order.
//
// A failure never stops the batch. Once ctx is done, the remaining runes
// are reported as StatusFailed with the context error.
func ConvertAll(ctx context.Context, conv *Converter, runes []rune, opts BatchOptions) []Result {
	results := make([]Result, len(runes))
	if len(runes) == 0 {
		return results
	}

	pool := parallel.NewWorkerPool(opts.Workers)
	defer pool.Close()

	start := time.Now()
	Logger().Info("glyphsvg: batch started", "runes", len(runes), "workers", pool.Workers())

	_ = pool.ForEach(ctx, len(runes), func(ctx context.Context, i int) {
		results[i] = convertOne(ctx, conv, runes[i], opts.Timeout)
	})

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}
	Logger().Info("glyphsvg: batch finished",
		"runes", len(runes), "failed", failed, "elapsed", time.Since(start))
	return results
}

// convertOne runs a single conversion under ctx and the per-item timeout.
func convertOne(ctx context.Context, conv *Converter, r rune, timeout time.Duration) Result {
	if err := ctx.Err(); err != nil {
		return cancelled(r, err)
	}
	if timeout <= 0 {
		return conv.Convert(r)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() { done <- conv.Convert(r) }()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		Logger().Warn("glyphsvg: conversion abandoned",
			"rune", fmt.Sprintf("U+%04X", r), "err", ctx.Err())
		return cancelled(r, ctx.Err())
	}
}

func cancelled(r rune, err error) Result {
	return Result{
		Rune:   r,
		Status: StatusFailed,
		Err:    fmt.Errorf("glyphsvg: U+%04X: %w", r, err),
	}
}
