package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/archstore/ecs"
)

// ArchetypeInfo is one row of the archetype viewer.
type ArchetypeInfo struct {
	ID             ecs.ArchetypeId
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.Entity
	ArchetypeID    ecs.ArchetypeId
	ComponentTypes []string
	ComponentCount int
}

func componentNames(w *ecs.World, ids []ecs.ComponentId) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = w.Components().Info(id).Name()
	}
	return names
}

// CollectArchetypes snapshots every archetype of w in id order.
func CollectArchetypes(w *ecs.World) []ArchetypeInfo {
	infos := make([]ArchetypeInfo, 0, w.ArchetypeCount())
	for _, archetype := range w.Archetypes() {
		names := componentNames(w, archetype.Components())
		infos = append(infos, ArchetypeInfo{
			ID:             archetype.Id(),
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
			ComponentCount: len(names),
		})
	}
	return infos
}

// SortArchetypes orders rows by a table column: 0 id, 1 components,
// 2 component count, 3 entity count.
func SortArchetypes(infos []ArchetypeInfo, column int, ascending bool) {
	slices.SortStableFunc(infos, func(a, b ArchetypeInfo) int {
		var c int
		switch column {
		case 0:
			c = cmp.Compare(a.ID, b.ID)
		case 1:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = cmp.Compare(a.ComponentCount, b.ComponentCount)
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// CollectEntities snapshots every live entity of w. Only dense components
// are listed since they are what places the entity in its archetype.
func CollectEntities(w *ecs.World) []EntityInfo {
	infos := make([]EntityInfo, 0, w.Len())
	for _, archetype := range w.Archetypes() {
		names := componentNames(w, archetype.Components())
		for e := range archetype.Iter() {
			infos = append(infos, EntityInfo{
				ID:             e,
				ArchetypeID:    archetype.Id(),
				ComponentTypes: names,
				ComponentCount: len(names),
			})
		}
	}
	return infos
}

// SortEntities orders rows by a table column: 0 entity, 1 archetype,
// 2 components, 3 component count.
func SortEntities(infos []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(infos, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 3:
			c = cmp.Compare(a.ComponentCount, b.ComponentCount)
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// FilterEntities keeps rows whose entity, archetype or component names contain
// text (case-insensitive) and, when archetype is set, that live in it.
func FilterEntities(infos []EntityInfo, text string, archetype *ecs.ArchetypeId) []EntityInfo {
	if text == "" && archetype == nil {
		return infos
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(infos))
	for _, info := range infos {
		if archetype != nil && info.ArchetypeID != *archetype {
			continue
		}
		if needle != "" {
			idStr := strings.ToLower(info.ID.String())
			archStr := fmt.Sprintf("0x%x", info.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(info.ComponentTypes, " "))
			if !strings.Contains(idStr, needle) &&
				!strings.Contains(archStr, needle) &&
				!strings.Contains(componentsStr, needle) {
				continue
			}
		}
		filtered = append(filtered, info)
	}
	return filtered
}

// QueryMatch is the result of an ad-hoc query built from selected component ids.
type QueryMatch struct {
	Archetypes []*ecs.Archetype
	Entities   int
}

// MatchComponents finds the archetypes whose signature holds every selected
// dense component and counts the entities that also hold every selected
// sparse component.
func MatchComponents(w *ecs.World, selected []ecs.ComponentId) QueryMatch {
	dense := ecs.NewComponentSet()
	var sparse []ecs.ComponentId
	for _, id := range selected {
		if w.Components().Info(id).IsSparse() {
			sparse = append(sparse, id)
		} else {
			dense.Insert(id)
		}
	}

	var match QueryMatch
	for _, archetype := range w.Archetypes() {
		if !archetype.Signature().IsSuperset(dense) {
			continue
		}
		if len(sparse) == 0 {
			match.Archetypes = append(match.Archetypes, archetype)
			match.Entities += archetype.Len()
			continue
		}

		count := 0
		for e := range archetype.Iter() {
			if holdsAll(w, e, sparse) {
				count++
			}
		}
		if count > 0 {
			match.Archetypes = append(match.Archetypes, archetype)
			match.Entities += count
		}
	}
	return match
}

func holdsAll(w *ecs.World, e ecs.Entity, ids []ecs.ComponentId) bool {
	for _, id := range ids {
		if !w.HasComponent(e, w.Components().Info(id).Type()) {
			return false
		}
	}
	return true
}
