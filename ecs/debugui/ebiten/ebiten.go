// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/plus3/archstore/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It is stored as a resource so systems and the game loop share one backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// InstallBackend stores backend in r and returns a Singleton bound to it.
func InstallBackend(r *ecs.Resources, backend *ebitenbackend.EbitenBackend) *ecs.Singleton[ImguiBackend] {
	ecs.InsertResource(r, ImguiBackend{EbitenBackend: backend})
	return ecs.NewSingleton[ImguiBackend](r)
}
