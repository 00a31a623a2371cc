package ecs_test

import (
	"fmt"

	"github.com/plus3/archstore/ecs"
)

// ExampleCommands shows how to queue structural changes while iterating and
// apply them once the iteration is over.
func ExampleCommands() {
	w := ecs.NewWorld()
	ecs.RegisterComponent[Health](w.Components())
	ecs.RegisterComponent[Name](w.Components())

	w.Spawn(Name{Value: "a"}, Health{Current: 0})
	w.Spawn(Name{Value: "b"}, Health{Current: 5})
	w.Spawn(Name{Value: "c"}, Health{Current: 0})

	cmds := ecs.NewCommands()
	query := ecs.MustQuery[struct {
		*Name
		*Health
	}](w)
	for e, item := range query.Iter() {
		if item.Health.Current <= 0 {
			cmds.Despawn(e)
		}
	}
	cmds.Defer(func() {
		fmt.Println("flushed")
	})

	fmt.Println("before flush:", w.Len())
	cmds.Flush(w)
	fmt.Println("after flush:", w.Len())

	for item := range query.Values() {
		fmt.Println("survivor:", item.Name.Value)
	}

	// Output:
	// before flush: 3
	// flushed
	// after flush: 1
	// survivor: b
}
