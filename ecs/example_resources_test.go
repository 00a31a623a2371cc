package ecs_test

import (
	"fmt"

	"github.com/plus3/archstore/ecs"
)

// ExampleSingleton keeps global state next to the World in Resources.
func ExampleSingleton() {
	r := ecs.NewResources()

	config := ecs.NewSingleton(r, GameConfig{Difficulty: 1, Title: "demo"})
	config.Get().Difficulty++

	fmt.Println(ecs.GetResource[GameConfig](r).Difficulty)
	fmt.Println(ecs.NewSingleton[GameConfig](r).Get().Title)

	// Output:
	// 2
	// demo
}

// ExampleQueryFrom shares one compiled query state between callers.
func ExampleQueryFrom() {
	r := ecs.NewResources()
	w := ecs.WorldFrom(r)
	ecs.RegisterComponent[Position](w.Components())
	ecs.RegisterComponent[Name](w.Components())
	w.Spawn(Position{X: 1})

	first, _ := ecs.QueryFrom[struct{ *Position }](r)
	second, _ := ecs.QueryFrom[struct{ *Position }](r)

	w.Spawn(Position{X: 2}, Name{Value: "new archetype"})
	fmt.Println(first.State() == second.State(), second.Count())

	// Output:
	// true 2
}
