package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/archstore/ecs"
)

type EntityBrowserCache struct {
	entities           []EntityInfo
	lastArchetypeCount int
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			lastArchetypeCount: -1,
			sortAscending:      true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// FilterArchetype restricts the table to one archetype until the filter is cleared.
func (eb *EntityBrowserComponent) FilterArchetype(id ecs.ArchetypeId) {
	eb.filterArchetypeId = &id
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) SelectedEntity() ecs.Entity {
	return eb.selectedEntity
}

func (eb *EntityBrowserComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if eb.cache == nil {
		*eb = NewEntityBrowserComponent(100)
	}
	eb.refresh(w)
	if eb.selectedEntity != 0 && !w.IsAlive(eb.selectedEntity) {
		eb.selectedEntity = 0
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetypeId = nil
		eb.currentPage = 0
	}

	filtered := FilterEntities(eb.cache.entities, eb.filterText, eb.filterArchetypeId)
	totalPages := max(1, (len(filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = FilterEntities(eb.cache.entities, eb.filterText, eb.filterArchetypeId)
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selectedEntity == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}
}

// refresh rebuilds the snapshot when the number of archetypes or live
// entities changed since the last frame.
func (eb *EntityBrowserComponent) refresh(w *ecs.World) {
	archetypes, live := w.ArchetypeCount(), w.Len()
	if archetypes == eb.cache.lastArchetypeCount && live == eb.cache.lastEntityCount {
		return
	}
	eb.cache.lastArchetypeCount = archetypes
	eb.cache.lastEntityCount = live
	eb.cache.entities = CollectEntities(w)
	SortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
}
