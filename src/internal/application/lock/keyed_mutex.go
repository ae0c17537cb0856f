// Package lock 提供以字串為鍵的行程內互斥鎖。
package lock

import (
	"slices"
	"sync"
)

// KeyedMutex 依鍵序列化的互斥鎖
//
// 同一個鍵同時只有一個持有者；不同鍵互不阻塞。
// 沒有人持有或等待的鍵會被回收，map 不會無限成長。
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New 建立 KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock 依排序後的順序取得所有鍵的鎖（重複的鍵只鎖一次）
//
// 固定的取得順序避免兩個請求以相反順序鎖同一組使用者時互相等待。
// 返回的 unlock 必須呼叫且只能呼叫一次。
func (k *KeyedMutex) Lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*entry, 0, len(sorted))
	for _, key := range sorted {
		e := k.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				k.release(sorted[i])
			}
		})
	}
}

func (k *KeyedMutex) acquire(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyedMutex) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}

// size 目前追蹤中的鍵數量（測試用）
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
