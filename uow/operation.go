package uow

// Operation identifies the kind of database mutation a staged command performs.
type Operation int

const (
	// OperationCreate inserts the aggregate.
	OperationCreate Operation = iota

	// OperationUpdate updates the aggregate.
	OperationUpdate

	// OperationDelete deletes the aggregate.
	OperationDelete
)

// String returns the lowercase name of the operation.
func (o Operation) String() string {
	switch o {
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}
