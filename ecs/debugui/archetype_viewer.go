package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/archstore/ecs"
)

type ArchetypeViewerCache struct {
	archetypes         []ArchetypeInfo
	lastArchetypeCount int
	sortColumn         int
	sortAscending      bool
}

func NewArchetypeViewerComponent() ArchetypeViewerComponent {
	return ArchetypeViewerComponent{
		cache: &ArchetypeViewerCache{
			lastArchetypeCount: -1,
			sortColumn:         3,
			sortAscending:      false,
		},
	}
}

// Render draws the viewer and returns the archetype clicked this frame, if any.
func (av *ArchetypeViewerComponent) Render(w *ecs.World) *ecs.ArchetypeId {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}
	defer imgui.End()

	if av.cache == nil {
		*av = NewArchetypeViewerComponent()
	}
	av.refresh(w)

	maxEntityCount := 0
	for _, arch := range av.cache.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return nil
	}
	defer imgui.EndTable()

	imgui.TableSetupColumn("Archetype ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Comp Count")
	imgui.TableSetupColumn("Entity Count")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		av.cache.sortColumn = int(spec.ColumnIndex())
		av.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		SortArchetypes(av.cache.archetypes, av.cache.sortColumn, av.cache.sortAscending)
		sortSpecs.SetSpecsDirty(false)
	}

	var clicked *ecs.ArchetypeId
	for _, arch := range av.cache.archetypes {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		isSelected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
		if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			id := arch.ID
			clicked = &id
			av.selectedArchId = &id
		}

		imgui.TableNextColumn()
		if arch.ComponentCount == 0 {
			imgui.Text("(empty)")
		} else {
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))
		}

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.ComponentCount))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

		if maxEntityCount > 0 {
			barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
			imgui.SameLine()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}
	}
	return clicked
}

// refresh rebuilds the rows when the archetype graph grew and otherwise only
// updates entity counts.
func (av *ArchetypeViewerComponent) refresh(w *ecs.World) {
	if count := w.ArchetypeCount(); count != av.cache.lastArchetypeCount {
		av.cache.lastArchetypeCount = count
		av.cache.archetypes = CollectArchetypes(w)
		SortArchetypes(av.cache.archetypes, av.cache.sortColumn, av.cache.sortAscending)
		return
	}

	for i := range av.cache.archetypes {
		if archetype := w.Archetype(av.cache.archetypes[i].ID); archetype != nil {
			av.cache.archetypes[i].EntityCount = archetype.Len()
		}
	}
	if av.cache.sortColumn == 3 {
		SortArchetypes(av.cache.archetypes, av.cache.sortColumn, av.cache.sortAscending)
	}
}
