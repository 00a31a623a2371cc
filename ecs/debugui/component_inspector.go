package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/archstore/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(w *ecs.World, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.selectedEntity = selected
	if ci.selectedEntity == 0 {
		imgui.Text("No entity selected")
		return
	}

	archetypeId, row, ok := w.Location(ci.selectedEntity)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s is not alive", ci.selectedEntity))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X (row %d)", archetypeId, row))
	imgui.Separator()

	// Values are pointers into storage, so edits apply in place.
	for _, component := range w.ComponentsOf(ci.selectedEntity) {
		val := reflect.ValueOf(component).Elem()
		id, ok := w.Components().IdOf(val.Type())
		if !ok {
			continue
		}
		layout := inspectorLayouts.Layout(w.Components().Info(id))
		if imgui.TreeNodeStr(layout.Label()) {
			renderLayout(layout, val)
			imgui.TreePop()
		}
	}
}

func renderLayout(layout *ComponentLayout, val reflect.Value) {
	if layout.Scalar {
		renderField("value", val)
		return
	}
	for _, field := range layout.Fields {
		fieldVal := val.FieldByIndex(field.Index)
		if field.Pointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Path))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Path, fieldVal)
	}
}

// renderField draws an editor for scalar kinds and a summary for the rest.
// Edits are written straight into val when it is settable.
func renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}
	id := "##" + name

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 && val.CanSet() && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func, reflect.Chan, reflect.Interface, reflect.Pointer:
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
