package ecs

import (
	"fmt"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// sparseStorage is the type-erased contract of sparse storage: a mapping from
// entity to component value that lives outside archetype tables.
type sparseStorage interface {
	Len() int
	insertValue(e Entity, item any)
	remove(e Entity) bool
	has(e Entity) bool
	pointer(e Entity) unsafe.Pointer
	value(e Entity) any
	entityAt(i int) Entity
}

type sparseEntry[T any] struct {
	entity Entity
	value  *T
}

// sparseSet keeps one heap cell per value so component addresses never move
// while the entry exists. Only the owner list is reshuffled on removal.
type sparseSet[T any] struct {
	slots   *intmap.Map[uint32, int]
	entries []sparseEntry[T]
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{
		slots: intmap.New[uint32, int](64),
	}
}

func (s *sparseSet[T]) Len() int {
	return len(s.entries)
}

func (s *sparseSet[T]) insert(e Entity, item T) {
	if pos, ok := s.slots.Get(e.Index()); ok {
		entry := s.entries[pos]
		if entry.entity != e {
			panic(fmt.Sprintf("ecs: sparse slot of %s still owned by %s", e, entry.entity))
		}
		*entry.value = item
		return
	}

	cell := new(T)
	*cell = item
	s.slots.Put(e.Index(), len(s.entries))
	s.entries = append(s.entries, sparseEntry[T]{entity: e, value: cell})
}

func (s *sparseSet[T]) insertValue(e Entity, item any) {
	s.insert(e, unwrapComponent[T](item))
}

func (s *sparseSet[T]) get(e Entity) *T {
	pos, ok := s.slots.Get(e.Index())
	if !ok {
		return nil
	}
	entry := s.entries[pos]
	if entry.entity != e {
		return nil
	}
	return entry.value
}

func (s *sparseSet[T]) has(e Entity) bool {
	return s.get(e) != nil
}

func (s *sparseSet[T]) remove(e Entity) bool {
	pos, ok := s.slots.Get(e.Index())
	if !ok || s.entries[pos].entity != e {
		return false
	}

	last := len(s.entries) - 1
	if pos != last {
		moved := s.entries[last]
		s.entries[pos] = moved
		s.slots.Put(moved.entity.Index(), pos)
	}
	s.entries[last] = sparseEntry[T]{}
	s.entries = s.entries[:last]
	s.slots.Del(e.Index())
	return true
}

func (s *sparseSet[T]) pointer(e Entity) unsafe.Pointer {
	return unsafe.Pointer(s.get(e))
}

func (s *sparseSet[T]) value(e Entity) any {
	ptr := s.get(e)
	if ptr == nil {
		return nil
	}
	return ptr
}

func (s *sparseSet[T]) entityAt(i int) Entity {
	return s.entries[i].entity
}
