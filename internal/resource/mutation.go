package resource

// MutationKind classifies an in-flight or settled mutation.
type MutationKind string

const (
	MutationCreate       MutationKind = "create"
	MutationUpdate       MutationKind = "update"
	MutationDelete       MutationKind = "delete"
	MutationBulkOp       MutationKind = "bulkOp"
	MutationStatusUpdate MutationKind = "statusUpdate"
)

// MutationStatus is the lifecycle state of a mutation.
type MutationStatus string

const (
	MutationPending MutationStatus = "pending"
	MutationSuccess MutationStatus = "success"
	MutationError   MutationStatus = "error"
)

// Mutation is the state object handed back with every mutation call. Errors
// stay on the mutation, never in a global handler, so the calling form can
// render field-level or toast-level feedback. The cache is only touched when
// Status reaches MutationSuccess.
type Mutation[E any] struct {
	Kind     MutationKind
	TargetID string
	Status   MutationStatus
	Entity   *E
	Err      error
}

// IsError reports whether the mutation settled with an error.
func (m *Mutation[E]) IsError() bool {
	return m != nil && m.Status == MutationError
}

func newMutation[E any](kind MutationKind, targetID string) *Mutation[E] {
	return &Mutation[E]{Kind: kind, TargetID: targetID, Status: MutationPending}
}

func (m *Mutation[E]) succeed(entity *E) *Mutation[E] {
	m.Status = MutationSuccess
	m.Entity = entity
	return m
}

func (m *Mutation[E]) fail(err error) *Mutation[E] {
	m.Status = MutationError
	m.Err = err
	return m
}
