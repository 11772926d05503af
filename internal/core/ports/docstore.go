package ports

import "context"

// StringSet marks a field with set semantics: membership writes go through
// BatchArrayUnion/BatchArrayRemove, order is not meaningful, and backends
// may store it as a native set type.
type StringSet []string

// Document is a single schemaless record in a named collection.
type Document struct {
	ID   string
	Data map[string]any
}

// FilterOp enumerates the predicate operators the document store supports.
type FilterOp string

const (
	OpEqual         FilterOp = "=="
	OpLess          FilterOp = "<"
	OpLessEqual     FilterOp = "<="
	OpGreater       FilterOp = ">"
	OpGreaterEqual  FilterOp = ">="
	OpArrayContains FilterOp = "array-contains"
	OpIn            FilterOp = "in"
)

// Filter is one predicate of a compound query.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query describes a compound query against one collection. StartAfter is a
// document id cursor; an empty cursor starts at the beginning.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
	StartAfter string
}

// BatchOpKind enumerates the write kinds an atomic batch may carry.
type BatchOpKind string

const (
	BatchSet         BatchOpKind = "set"
	BatchUpdate      BatchOpKind = "update"
	BatchDelete      BatchOpKind = "delete"
	BatchIncrement   BatchOpKind = "increment"
	BatchArrayUnion  BatchOpKind = "array-union"
	BatchArrayRemove BatchOpKind = "array-remove"
)

// BatchOp is one write of an atomic multi-document batch. For BatchIncrement
// Fields maps field names to numeric deltas; for the array ops Fields maps
// field names to the elements to add or remove.
type BatchOp struct {
	Kind       BatchOpKind
	Collection string
	ID         string
	Fields     map[string]any
}

// SnapshotFunc receives the full result set of a subscribed query every
// time an underlying document changes.
type SnapshotFunc func(docs []Document)

// CancelListener stops delivery for one subscription. Safe to call more
// than once.
type CancelListener func()

// DocumentStore is the hosted document database this backend delegates all
// persistence to. Implementations: the in-memory store used by tests and
// local runs, and the DynamoDB adapter.
type DocumentStore interface {
	// Get returns the document or (nil, nil) when the id does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Create writes a new document and returns its store-assigned id.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set writes the document at a caller-chosen id, replacing it entirely.
	Set(ctx context.Context, collection, id string, data map[string]any) error
	// Update patches only the given fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document; deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Query runs a compound query and returns matching documents in order.
	Query(ctx context.Context, q Query) ([]Document, error)
	// RunBatch applies all ops atomically; either every op commits or none do.
	RunBatch(ctx context.Context, ops []BatchOp) error
	// Subscribe delivers the full result set of q on every change until the
	// returned cancel func is called.
	Subscribe(ctx context.Context, q Query, fn SnapshotFunc) (CancelListener, error)
}
