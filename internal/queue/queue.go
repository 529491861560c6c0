// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Package queue provides the gate-job queue between clients submitting
// homomorphic boolean operations and the evaluation workers that
// execute them.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghostcrypt/tfhe/internal/storage"
)

// Job statuses.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Common errors.
var (
	ErrClosed      = errors.New("queue: closed")
	ErrJobNotFound = errors.New("queue: job not found")
)

// Job describes one boolean gate to evaluate. Operand handles refer to
// serialized ciphertexts in storage; unary gates leave RHS empty and
// MUX fills Sel.
type Job struct {
	ID     string         `json:"id"`
	Op     string         `json:"op"`
	LHS    storage.Handle `json:"lhs"`
	RHS    storage.Handle `json:"rhs,omitempty"`
	Sel    storage.Handle `json:"sel,omitempty"`
	Result storage.Handle `json:"result,omitempty"`
	Status string         `json:"status"`
	Error  string         `json:"error,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
}

// Queue is the job transport between submitters and workers.
type Queue interface {
	// Submit enqueues a job for evaluation.
	Submit(ctx context.Context, job *Job) error
	// Next blocks until a job is available or the context is done.
	Next(ctx context.Context) (*Job, error)
	// Complete records the final state of a job.
	Complete(ctx context.Context, job *Job) error
	// Status returns the last recorded state of a job.
	Status(ctx context.Context, id string) (*Job, error)
	// Close releases the backing resources.
	Close() error
}

// MemoryQueue is an in-process Queue used in tests and single-node
// deployments.
type MemoryQueue struct {
	mu      sync.Mutex
	pending chan *Job
	jobs    map[string]*Job
	done    chan struct{}
	closed  bool
}

// NewMemoryQueue creates an in-memory queue buffering up to size
// pending jobs.
func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{
		pending: make(chan *Job, size),
		jobs:    make(map[string]*Job),
		done:    make(chan struct{}),
	}
}

func (q *MemoryQueue) Submit(ctx context.Context, job *Job) error {
	job.Status = StatusPending
	job.SubmittedAt = time.Now().UTC()

	// The map keeps a snapshot so Status never aliases a job a worker
	// is mutating.
	snap := *job
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.jobs[job.ID] = &snap
	q.mu.Unlock()

	// The pending channel is never closed, so a Close racing this send
	// resolves through done instead of a send-on-closed panic.
	select {
	case q.pending <- job:
		return nil
	case <-q.done:
		q.forget(job.ID)
		return ErrClosed
	case <-ctx.Done():
		q.forget(job.ID)
		return ctx.Err()
	}
}

func (q *MemoryQueue) forget(id string) {
	q.mu.Lock()
	delete(q.jobs, id)
	q.mu.Unlock()
}

func (q *MemoryQueue) Next(ctx context.Context) (*Job, error) {
	select {
	case job := <-q.pending:
		job.Status = StatusRunning
		return job, nil
	case <-q.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) Complete(ctx context.Context, job *Job) error {
	job.FinishedAt = time.Now().UTC()

	snap := *job
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	q.jobs[job.ID] = &snap
	return nil
}

func (q *MemoryQueue) Status(ctx context.Context, id string) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	return nil
}

// RedisQueue is a Queue backed by Redis lists, allowing workers to run
// on separate hosts from the submitting party.
type RedisQueue struct {
	client  *redis.Client
	listKey string
	jobKey  string
	ttl     time.Duration
}

// NewRedisQueue connects to Redis and namespaces the queue under
// prefix. Finished job records expire after ttl.
func NewRedisQueue(cfg storage.RedisConfig, prefix string, ttl time.Duration) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisQueue{
		client:  client,
		listKey: prefix + ":pending",
		jobKey:  prefix + ":job:",
		ttl:     ttl,
	}, nil
}

func (q *RedisQueue) Submit(ctx context.Context, job *Job) error {
	job.Status = StatusPending
	job.SubmittedAt = time.Now().UTC()

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	pipe := q.client.TxPipeline()
	pipe.Set(ctx, q.jobKey+job.ID, data, q.ttl)
	pipe.LPush(ctx, q.listKey, job.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (q *RedisQueue) Next(ctx context.Context) (*Job, error) {
	res, err := q.client.BRPop(ctx, 0, q.listKey).Result()
	if err != nil {
		return nil, err
	}
	id := res[1]

	data, err := q.client.Get(ctx, q.jobKey+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	job.Status = StatusRunning
	return &job, nil
}

func (q *RedisQueue) Complete(ctx context.Context, job *Job) error {
	job.FinishedAt = time.Now().UTC()

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.Set(ctx, q.jobKey+job.ID, data, q.ttl).Err()
}

func (q *RedisQueue) Status(ctx context.Context, id string) (*Job, error) {
	data, err := q.client.Get(ctx, q.jobKey+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
