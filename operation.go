package gqlgo

// OperationType is the kind of a generated operation.
type OperationType string

// Operation types.
const (
	OperationQuery        OperationType = "query"
	OperationMutation     OperationType = "mutation"
	OperationSubscription OperationType = "subscription"
)

// Operation is implemented by the descriptor value generated for every
// operation. It carries what a transport needs to send the operation.
type Operation interface {
	// OperationName returns the GraphQL operation name.
	OperationName() string
	// OperationType returns whether this is a query, mutation or subscription.
	OperationType() OperationType
	// Document returns the GraphQL text of the operation and every fragment
	// it references.
	Document() string
}
