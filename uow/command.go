package uow

// Command pairs one aggregate instance with one operation kind.
// It is immutable once created and consumed exactly once during commit replay.
type Command struct {
	aggregate Aggregate
	operation Operation
}

// Commands is an ordered sequence of staged commands; insertion order is the replay order.
type Commands []Command

// BuildCommand creates a new staged Command.
func BuildCommand(aggregate Aggregate, operation Operation) Command {
	return Command{aggregate: aggregate, operation: operation}
}

// Aggregate returns the staged aggregate instance.
func (c Command) Aggregate() Aggregate {
	return c.aggregate
}

// Operation returns the staged operation kind.
func (c Command) Operation() Operation {
	return c.operation
}
