package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can include Query fields for
// accessing entities, Singleton fields for global state, and custom state fields
// that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface. Function systems
// declare no access and therefore never share a batch with another system.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
