// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
)

// MemoryRepository is a process-local [Repository] used by the memory storage
// driver and by tests. Returned tags are copies.
type MemoryRepository struct {
	mu   sync.RWMutex
	tags map[string]Tag
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tags: make(map[string]Tag)}
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Tag, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	tags := make([]*Tag, 0, len(repository.tags))
	for _, t := range repository.tags {
		copied := t
		tags = append(tags, &copied)
	}
	sortByName(tags)
	return tags, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Tag, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	t, ok := repository.tags[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (repository *MemoryRepository) FindByName(_ context.Context, name string) (*Tag, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, t := range repository.tags {
		if t.Name == name {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (repository *MemoryRepository) FindByIDs(_ context.Context, ids []string) ([]*Tag, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	tags := make([]*Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := repository.tags[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		tags = append(tags, &t)
	}
	sortByName(tags)
	return tags, nil
}

func (repository *MemoryRepository) Create(_ context.Context, tag *Tag) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.nameTakenLocked(tag.Name, "") {
		return dberr.UniqueViolation(schema.Tag.NameConstraint)
	}

	now := time.Now().UTC()
	tag.CreatedAt, tag.UpdatedAt = now, now
	repository.tags[tag.ID] = *tag
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, tag *Tag) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	current, ok := repository.tags[tag.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	if repository.nameTakenLocked(tag.Name, tag.ID) {
		return dberr.UniqueViolation(schema.Tag.NameConstraint)
	}

	tag.CreatedAt = current.CreatedAt
	tag.UpdatedAt = time.Now().UTC()
	repository.tags[tag.ID] = *tag
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.tags[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.tags, id)
	return nil
}

func (repository *MemoryRepository) nameTakenLocked(name, exceptID string) bool {
	for id, t := range repository.tags {
		if t.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func sortByName(tags []*Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}
