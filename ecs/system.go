package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are usually structs with Query and Singleton fields, which the
// Scheduler wires to its storage on Register, plus any state they keep between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBound is implemented by Query and Singleton fields.
type storageBound interface {
	Init(storage *Storage)
}

// executable is implemented by Query fields.
type executable interface {
	Execute()
}
