package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/archstore/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selected: make(map[ecs.ComponentId]bool),
	}
}

// Selected returns the chosen component ids in ascending order.
func (qd *QueryDebuggerComponent) Selected() []ecs.ComponentId {
	ids := make([]ecs.ComponentId, 0, len(qd.selected))
	for id := range qd.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Toggle adds or removes id from the selection.
func (qd *QueryDebuggerComponent) Toggle(id ecs.ComponentId, on bool) {
	if on {
		if qd.selected == nil {
			qd.selected = make(map[ecs.ComponentId]bool)
		}
		qd.selected[id] = true
	} else {
		delete(qd.selected, id)
	}
}

func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, info := range w.Components().All() {
		label := info.Name()
		if info.IsSparse() {
			label += " (sparse)"
		}
		selected := qd.selected[info.Id()]
		if imgui.Checkbox(label, &selected) {
			qd.Toggle(info.Id(), selected)
		}
	}

	imgui.Separator()

	ids := qd.Selected()
	if len(ids) == 0 {
		imgui.Text("No component types selected")
		return
	}

	match := MatchComponents(w, ids)
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(match.Archetypes)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", match.Entities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range match.Archetypes {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.Id()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(componentNames(w, arch.Components()), ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}
}
