// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package server runs the outsourced boolean-gate evaluation service.
//
// Clients encrypt bits under their secret key, store the serialized
// ciphertexts, and submit gate jobs referencing them by handle. The
// worker pool evaluates the gates with a public bootstrap key and
// stores the refreshed results; the secret key never reaches the
// server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ghostcrypt/tfhe"
	"github.com/ghostcrypt/tfhe/internal/queue"
	"github.com/ghostcrypt/tfhe/internal/storage"
)

// Config holds the worker pool configuration.
type Config struct {
	NumWorkers int
	Queue      queue.Queue
	Storage    storage.Storage
}

// Pool evaluates gate jobs with a shared bootstrap key. Each worker
// goroutine holds its own shallow evaluator copy, so scratch buffers
// are never shared.
type Pool struct {
	cfg    Config
	params tfhe.Parameters

	evalPool sync.Pool

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	running atomic.Bool

	successCount atomic.Int64
	failureCount atomic.Int64
}

// NewPool creates a worker pool evaluating under bsk.
func NewPool(cfg Config, bsk *tfhe.BootstrapKey) (*Pool, error) {
	if cfg.NumWorkers < 1 {
		return nil, errors.New("server: at least one worker required")
	}
	if cfg.Queue == nil || cfg.Storage == nil {
		return nil, errors.New("server: queue and storage required")
	}

	base := tfhe.NewEvaluator(bsk)
	p := &Pool{cfg: cfg, params: base.Parameters()}
	p.evalPool.New = func() any { return base.ShallowCopy() }
	return p, nil
}

// Counts returns the number of successful and failed jobs so far.
func (p *Pool) Counts() (success, failure int64) {
	return p.successCount.Load(), p.failureCount.Load()
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) error {
	if p.running.Load() {
		return errors.New("server: pool already running")
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.running.Store(true)

	for i := 0; i < p.cfg.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	return nil
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() error {
	if !p.running.Load() {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return errors.New("server: shutdown timeout")
	}

	p.running.Store(false)
	return nil
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		job, err := p.cfg.Queue.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, queue.ErrClosed) {
				return
			}
			log.Printf("worker %d: next job: %v", id, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if err := p.processJob(ctx, job); err != nil {
			job.Status = queue.StatusFailed
			job.Error = err.Error()
			p.failureCount.Add(1)
		} else {
			job.Status = queue.StatusDone
			p.successCount.Add(1)
		}
		if err := p.cfg.Queue.Complete(ctx, job); err != nil {
			log.Printf("worker %d: complete job %s: %v", id, job.ID, err)
		}
	}
}

func (p *Pool) loadCiphertext(ctx context.Context, handle storage.Handle) (*tfhe.Ciphertext, error) {
	data, err := p.cfg.Storage.Load(ctx, handle)
	if err != nil {
		return nil, err
	}
	return tfhe.ReadCiphertext(data, p.params)
}

func (p *Pool) processJob(ctx context.Context, job *queue.Job) error {
	eval := p.evalPool.Get().(*tfhe.Evaluator)
	defer p.evalPool.Put(eval)

	lhs, err := p.loadCiphertext(ctx, job.LHS)
	if err != nil {
		return fmt.Errorf("load lhs: %w", err)
	}

	var result *tfhe.Ciphertext
	switch job.Op {
	case "NOT":
		result, err = eval.NOT(lhs)
	case "BOOTSTRAP":
		result, err = eval.Bootstrap(lhs)
	case "AND", "OR", "NAND", "NOR", "XOR", "XNOR", "GREATER":
		var rhs *tfhe.Ciphertext
		rhs, err = p.loadCiphertext(ctx, job.RHS)
		if err != nil {
			return fmt.Errorf("load rhs: %w", err)
		}
		result, err = p.binaryGate(eval, job.Op, lhs, rhs)
	case "MUX":
		var rhs, sel *tfhe.Ciphertext
		if rhs, err = p.loadCiphertext(ctx, job.RHS); err != nil {
			return fmt.Errorf("load rhs: %w", err)
		}
		if sel, err = p.loadCiphertext(ctx, job.Sel); err != nil {
			return fmt.Errorf("load sel: %w", err)
		}
		result, err = eval.MUX(sel, lhs, rhs)
	default:
		return fmt.Errorf("unsupported op %q", job.Op)
	}
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", job.Op, err)
	}

	data, err := result.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	handle, err := p.cfg.Storage.Store(ctx, data)
	if err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	job.Result = handle
	return nil
}

func (p *Pool) binaryGate(eval *tfhe.Evaluator, op string, a, b *tfhe.Ciphertext) (*tfhe.Ciphertext, error) {
	switch op {
	case "AND":
		return eval.AND(a, b)
	case "OR":
		return eval.OR(a, b)
	case "NAND":
		return eval.NAND(a, b)
	case "NOR":
		return eval.NOR(a, b)
	case "XOR":
		return eval.XOR(a, b)
	case "XNOR":
		return eval.XNOR(a, b)
	case "GREATER":
		return eval.GREATER(a, b)
	}
	return nil, fmt.Errorf("unsupported op %q", op)
}
