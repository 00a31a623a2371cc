package debugui

import (
	"reflect"
	"sync"

	"github.com/plus3/archstore/ecs"
)

// FieldInfo is one editable leaf of a component. Nested structs are flattened
// so Path reads "Nested.DX" and Index walks reflect.Value.FieldByIndex.
type FieldInfo struct {
	Path     string
	Index    []int
	Type     reflect.Type
	Pointer  bool
	Editable bool
}

// ComponentLayout is how the inspector presents one registered component type.
type ComponentLayout struct {
	Id     ecs.ComponentId
	Name   string
	Sparse bool
	// Scalar components (type Score int) are edited as a single value.
	Scalar bool
	Fields []FieldInfo
}

// Label is the tree node title: the type name, tagged when sparse.
func (l *ComponentLayout) Label() string {
	if l.Sparse {
		return l.Name + " (sparse)"
	}
	return l.Name
}

// LayoutCache builds layouts once per component type. Registries of several
// worlds may share it since layouts only depend on the Go type and storage kind.
type LayoutCache struct {
	layouts sync.Map // reflect.Type -> *ComponentLayout
}

func NewLayoutCache() *LayoutCache {
	return &LayoutCache{}
}

func (c *LayoutCache) Layout(info *ecs.ComponentInfo) *ComponentLayout {
	if cached, ok := c.layouts.Load(info.Type()); ok {
		layout := cached.(*ComponentLayout)
		if layout.Sparse == info.IsSparse() {
			return layout
		}
	}

	layout := &ComponentLayout{
		Id:     info.Id(),
		Name:   info.Name(),
		Sparse: info.IsSparse(),
		Scalar: info.Type().Kind() != reflect.Struct,
	}
	if !layout.Scalar {
		layout.Fields = flattenFields(info.Type(), "", nil)
	}
	c.layouts.Store(info.Type(), layout)
	return layout
}

func flattenFields(t reflect.Type, prefix string, index []int) []FieldInfo {
	var fields []FieldInfo
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		fieldIndex := append(append([]int(nil), index...), i)

		// value structs are inlined; pointers stay leaves so a nil never gets walked
		if field.Type.Kind() == reflect.Struct {
			fields = append(fields, flattenFields(field.Type, path, fieldIndex)...)
			continue
		}

		isPointer := field.Type.Kind() == reflect.Pointer
		fields = append(fields, FieldInfo{
			Path:     path,
			Index:    fieldIndex,
			Type:     field.Type,
			Pointer:  isPointer,
			Editable: !isPointer && editableKind(field.Type.Kind()),
		})
	}
	return fields
}

func editableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return false
}

var inspectorLayouts = NewLayoutCache()
