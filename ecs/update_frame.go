package ecs

// UpdateFrame is handed to every system for one scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	// Commands is private to the system; it is flushed after all systems ran.
	Commands  *Commands
	World     *World
	Resources *Resources
}

func newUpdateFrame(dt float64, w *World, r *Resources) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		World:     w,
		Resources: r,
	}
}
