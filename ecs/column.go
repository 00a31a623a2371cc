package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// column is the type-erased contract of dense storage: one packed array per
// (archetype, component) pair. Rows are kept contiguous by swap-remove, so the
// caller must fix up the directory row of whichever entity got moved.
type column interface {
	Len() int
	pushValue(item any)
	pushFrom(src column, row int)
	set(row int, item any)
	swapRemove(row int)
	pointer(row int) unsafe.Pointer
	value(row int) any
}

// denseColumn stores components of a specific type `T` contiguously.
type denseColumn[T any] struct {
	data []T
}

func (c *denseColumn[T]) Len() int {
	return len(c.data)
}

func (c *denseColumn[T]) push(item T) {
	c.data = append(c.data, item)
}

// pushValue appends a component passed either as T or *T.
func (c *denseColumn[T]) pushValue(item any) {
	c.data = append(c.data, unwrapComponent[T](item))
}

// pushFrom appends row of src, which must hold the same component type.
func (c *denseColumn[T]) pushFrom(src column, row int) {
	c.data = append(c.data, src.(*denseColumn[T]).data[row])
}

func (c *denseColumn[T]) set(row int, item any) {
	c.data[row] = unwrapComponent[T](item)
}

// swapRemove moves the last element into row and shrinks the column. The
// vacated tail slot is zeroed so references held by the value are released.
func (c *denseColumn[T]) swapRemove(row int) {
	last := len(c.data) - 1
	if row != last {
		c.data[row] = c.data[last]
	}
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *denseColumn[T]) get(row int) *T {
	return &c.data[row]
}

func (c *denseColumn[T]) pointer(row int) unsafe.Pointer {
	return unsafe.Pointer(&c.data[row])
}

func (c *denseColumn[T]) value(row int) any {
	return &c.data[row]
}

func unwrapComponent[T any](item any) T {
	if ptr, ok := item.(*T); ok {
		return *ptr
	}
	if val, ok := item.(T); ok {
		return val
	}
	var zero T
	panic(fmt.Sprintf("ecs: cannot store %T in a column of %T", item, zero))
}

// reflectColumn is the dense column of a component type registered from its
// reflect.Type alone, where no typed denseColumn can be instantiated.
type reflectColumn struct {
	typ  reflect.Type
	data reflect.Value
}

func newReflectColumn(t reflect.Type) *reflectColumn {
	return &reflectColumn{
		typ:  t,
		data: reflect.MakeSlice(reflect.SliceOf(t), 0, 8),
	}
}

func (c *reflectColumn) Len() int {
	return c.data.Len()
}

func (c *reflectColumn) unwrap(item any) reflect.Value {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Ptr && v.Type().Elem() == c.typ {
		v = v.Elem()
	}
	if v.Type() != c.typ {
		panic(fmt.Sprintf("ecs: cannot store %T in a column of %s", item, c.typ))
	}
	return v
}

func (c *reflectColumn) pushValue(item any) {
	c.data = reflect.Append(c.data, c.unwrap(item))
}

func (c *reflectColumn) pushFrom(src column, row int) {
	c.data = reflect.Append(c.data, src.(*reflectColumn).data.Index(row))
}

func (c *reflectColumn) set(row int, item any) {
	c.data.Index(row).Set(c.unwrap(item))
}

func (c *reflectColumn) swapRemove(row int) {
	last := c.data.Len() - 1
	if row != last {
		c.data.Index(row).Set(c.data.Index(last))
	}
	c.data.Index(last).SetZero()
	c.data = c.data.Slice(0, last)
}

func (c *reflectColumn) pointer(row int) unsafe.Pointer {
	return c.data.Index(row).Addr().UnsafePointer()
}

func (c *reflectColumn) value(row int) any {
	return c.data.Index(row).Addr().Interface()
}
