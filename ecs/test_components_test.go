package ecs_test

import "github.com/plus3/archstore/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type Frozen struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

// Components of the reference scenario: A and B dense, C..G sparse.
type A int
type B int
type C int
type D int
type E int
type F int
type G int

type Inventory struct {
	Items []string
}

type RefComponent struct {
	Ref *Position
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	registerTestComponents(w.Components())
	return w
}

func registerTestComponents(c *ecs.Components) {
	ecs.RegisterComponent[Position](c)
	ecs.RegisterComponent[Velocity](c)
	ecs.RegisterComponent[Name](c)
	ecs.RegisterComponent[Health](c)
	ecs.RegisterComponent[PlayerController](c)
	ecs.RegisterComponent[Frozen](c)
	ecs.RegisterComponent[AI](c)
	ecs.RegisterComponent[Score](c)
	ecs.RegisterComponent[Tag](c)
	ecs.RegisterComponent[Temperature](c)
	ecs.RegisterComponent[A](c)
	ecs.RegisterComponent[B](c)
	ecs.RegisterComponent[Inventory](c)
	ecs.RegisterComponent[RefComponent](c)
	for _, register := range []func(*ecs.Components) (ecs.ComponentId, error){
		ecs.RegisterSparseComponent[C],
		ecs.RegisterSparseComponent[D],
		ecs.RegisterSparseComponent[E],
		ecs.RegisterSparseComponent[F],
		ecs.RegisterSparseComponent[G],
	} {
		if _, err := register(c); err != nil {
			panic(err)
		}
	}
}

// spawnReference populates w with the 1000 entity reference scenario:
// i%4 == 1 holds only A(i), i%4 == 2 only B(i), every other i both A(i) and B(i).
func spawnReference(w *ecs.World) []ecs.Entity {
	entities := make([]ecs.Entity, 0, 1000)
	for i := 0; i < 1000; i++ {
		switch i % 4 {
		case 1:
			entities = append(entities, w.Spawn(A(i)))
		case 2:
			entities = append(entities, w.Spawn(B(i)))
		default:
			entities = append(entities, w.Spawn(A(i), B(i)))
		}
	}
	return entities
}
