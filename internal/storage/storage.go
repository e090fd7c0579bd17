// Package storage описывает хранилище JSON-документов по строковому ключу
// и его реализации: в памяти процесса и в PostgreSQL.
//
// Хранилище не даёт транзакционных гарантий: при конкурентной записи
// в один ключ побеждает последняя запись.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store — хранилище документов, сериализуемых в JSON.
type Store interface {
	// Get читает документ по ключу в dst. Возвращает false, если ключа нет.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set сохраняет документ по ключу, перезаписывая предыдущее значение.
	Set(ctx context.Context, key string, value any) error
	// Delete удаляет документ. Удаление отсутствующего ключа не является ошибкой.
	Delete(ctx context.Context, key string) error
}

// Memory хранит документы в памяти процесса. Используется в тестах и локальной разработке.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создаёт пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get реализует Store.
func (m *Memory) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "storage.Memory.Get"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set реализует Store.
func (m *Memory) Set(ctx context.Context, key string, value any) error {
	const op = "storage.Memory.Set"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete реализует Store.
func (m *Memory) Delete(ctx context.Context, key string) error {
	const op = "storage.Memory.Delete"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Ping всегда успешен, пока контекст не отменён.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}
