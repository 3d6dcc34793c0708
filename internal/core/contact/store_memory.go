// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/catalog/internal/platform/dberr"
)

// MemoryRepository keeps enquiries in insertion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	requests []Request
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Request, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	requests := make([]*Request, 0, len(repository.requests))
	for i := len(repository.requests) - 1; i >= 0; i-- {
		copied := repository.requests[i]
		requests = append(requests, &copied)
	}
	return requests, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Request, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, r := range repository.requests {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (repository *MemoryRepository) Create(_ context.Context, request *Request) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	request.CreatedAt = time.Now().UTC()
	repository.requests = append(repository.requests, *request)
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, r := range repository.requests {
		if r.ID == id {
			repository.requests = append(repository.requests[:i], repository.requests[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}
