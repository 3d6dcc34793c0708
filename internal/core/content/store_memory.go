// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
)

type memoryRecord struct {
	item Item
	seq  uint64
}

// MemoryRepository is a process-local [Repository] for the memory storage
// driver and for tests. It enforces the same (kind, slug) uniqueness as the
// database and hands out copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*memoryRecord)}
}

func (repository *MemoryRepository) List(_ context.Context, kind string) ([]*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*memoryRecord, 0)
	for _, record := range repository.records {
		if record.item.Kind == kind {
			matched = append(matched, record)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].item.CreatedAt.Equal(matched[j].item.CreatedAt) {
			return matched[i].item.CreatedAt.After(matched[j].item.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	items := make([]*Item, 0, len(matched))
	for _, record := range matched {
		items = append(items, copyItem(record.item))
	}
	return items, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, kind, id string) (*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	record, ok := repository.records[id]
	if !ok || record.item.Kind != kind {
		return nil, nil
	}
	return copyItem(record.item), nil
}

func (repository *MemoryRepository) FindBySlug(_ context.Context, kind, slug string) (*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	if record := repository.bySlugLocked(kind, slug); record != nil {
		return copyItem(record.item), nil
	}
	return nil, nil
}

func (repository *MemoryRepository) Create(_ context.Context, item *Item) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.bySlugLocked(item.Kind, item.URLText) != nil {
		return dberr.UniqueViolation(schema.ContentItem.SlugConstraint)
	}

	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now

	repository.seq++
	repository.records[item.ID] = &memoryRecord{item: *copyItem(*item), seq: repository.seq}
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, item *Item, replaceTags bool) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record, ok := repository.records[item.ID]
	if !ok || record.item.Kind != item.Kind {
		return dberr.ErrNotFound
	}
	if holder := repository.bySlugLocked(item.Kind, item.URLText); holder != nil && holder.item.ID != item.ID {
		return dberr.UniqueViolation(schema.ContentItem.SlugConstraint)
	}

	stored := copyItem(*item)
	if !replaceTags {
		stored.TagIDs = append([]string(nil), record.item.TagIDs...)
		item.TagIDs = append([]string(nil), record.item.TagIDs...)
	}
	stored.CreatedAt = record.item.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	item.UpdatedAt = stored.UpdatedAt

	record.item = *stored
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, kind, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record, ok := repository.records[id]
	if !ok || record.item.Kind != kind {
		return dberr.ErrNotFound
	}
	delete(repository.records, id)
	return nil
}

func (repository *MemoryRepository) bySlugLocked(kind, slug string) *memoryRecord {
	for _, record := range repository.records {
		if record.item.Kind == kind && record.item.URLText == slug {
			return record
		}
	}
	return nil
}

// copyItem detaches the returned item from stored slices and pointers.
// Repeated tag ids collapse, matching the junction table's primary key.
func copyItem(source Item) *Item {
	copied := source
	copied.Tags = nil

	seen := make(map[string]bool, len(source.TagIDs))
	copied.TagIDs = make([]string, 0, len(source.TagIDs))
	for _, id := range source.TagIDs {
		if !seen[id] {
			seen[id] = true
			copied.TagIDs = append(copied.TagIDs, id)
		}
	}

	if source.Date != nil {
		copied.Date = NewDate(source.Date.Time)
	}
	if source.Price != nil {
		price := *source.Price
		copied.Price = &price
	}
	return &copied
}
