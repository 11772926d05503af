package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/google/uuid"
)

// Store is an in-memory ports.DocumentStore. It backs local runs and every
// unit test; the DynamoDB adapter is the production implementation.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	subs        map[int64]*subscription
	nextSubID   int64
}

type subscription struct {
	query ports.Query
	fn    ports.SnapshotFunc
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		subs:        make(map[int64]*subscription),
	}
}

func (s *Store) collection(name string) map[string]map[string]any {
	col, ok := s.collections[name]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[name] = col
	}
	return col
}

// Get implements DocumentStore.Get.
func (s *Store) Get(_ context.Context, collection, id string) (*ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return &ports.Document{ID: id, Data: deepCopy(data)}, nil
}

// Create implements DocumentStore.Create.
func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Set implements DocumentStore.Set.
func (s *Store) Set(_ context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	s.collection(collection)[id] = deepCopy(data)
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

// Update implements DocumentStore.Update.
func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	doc, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("memory: update %s/%s: document does not exist", collection, id)
	}
	for k, v := range fields {
		doc[k] = copyValue(v)
	}
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

// Delete implements DocumentStore.Delete.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.collections[collection], id)
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

// Query implements DocumentStore.Query.
func (s *Store) Query(_ context.Context, q ports.Query) ([]ports.Document, error) {
	s.mu.RLock()
	docs := s.runQuery(q)
	s.mu.RUnlock()
	return docs, nil
}

// runQuery must be called with the lock held.
func (s *Store) runQuery(q ports.Query) []ports.Document {
	var out []ports.Document
	for id, data := range s.collections[q.Collection] {
		if matches(data, q.Filters) {
			out = append(out, ports.Document{ID: id, Data: deepCopy(data)})
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	} else {
		// Deterministic order for unordered queries.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	if q.StartAfter != "" {
		start := 0
		for i, d := range out {
			if d.ID == q.StartAfter {
				start = i + 1
				break
			}
		}
		out = out[start:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// RunBatch implements DocumentStore.RunBatch. Ops are validated before any
// of them is applied, so a failing batch leaves the store untouched.
func (s *Store) RunBatch(_ context.Context, ops []ports.BatchOp) error {
	s.mu.Lock()
	for _, op := range ops {
		switch op.Kind {
		case ports.BatchSet:
		case ports.BatchUpdate, ports.BatchIncrement, ports.BatchArrayUnion, ports.BatchArrayRemove:
			if _, ok := s.collections[op.Collection][op.ID]; !ok {
				s.mu.Unlock()
				return fmt.Errorf("memory: batch %s %s/%s: document does not exist", op.Kind, op.Collection, op.ID)
			}
		case ports.BatchDelete:
		default:
			s.mu.Unlock()
			return fmt.Errorf("memory: batch: unknown op kind %q", op.Kind)
		}
	}
	touched := make(map[string]struct{})
	for _, op := range ops {
		touched[op.Collection] = struct{}{}
		switch op.Kind {
		case ports.BatchSet:
			s.collection(op.Collection)[op.ID] = deepCopy(op.Fields)
		case ports.BatchUpdate:
			doc := s.collections[op.Collection][op.ID]
			for k, v := range op.Fields {
				doc[k] = copyValue(v)
			}
		case ports.BatchDelete:
			delete(s.collections[op.Collection], op.ID)
		case ports.BatchIncrement:
			doc := s.collections[op.Collection][op.ID]
			for k, delta := range op.Fields {
				doc[k] = toFloat(doc[k]) + toFloat(delta)
			}
		case ports.BatchArrayUnion:
			doc := s.collections[op.Collection][op.ID]
			for k, v := range op.Fields {
				doc[k] = arrayUnion(doc[k], v)
			}
		case ports.BatchArrayRemove:
			doc := s.collections[op.Collection][op.ID]
			for k, v := range op.Fields {
				doc[k] = arrayRemove(doc[k], v)
			}
		}
	}
	s.mu.Unlock()
	for col := range touched {
		s.notify(col)
	}
	return nil
}

// Subscribe implements DocumentStore.Subscribe. The first snapshot is
// delivered immediately.
func (s *Store) Subscribe(_ context.Context, q ports.Query, fn ports.SnapshotFunc) (ports.CancelListener, error) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = &subscription{query: q, fn: fn}
	docs := s.runQuery(q)
	s.mu.Unlock()

	fn(docs)

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// notify re-runs every subscription on the touched collection and delivers
// the full result set. Called without the lock held.
func (s *Store) notify(collection string) {
	type delivery struct {
		fn   ports.SnapshotFunc
		docs []ports.Document
	}
	s.mu.RLock()
	var pending []delivery
	for _, sub := range s.subs {
		if sub.query.Collection == collection {
			pending = append(pending, delivery{fn: sub.fn, docs: s.runQuery(sub.query)})
		}
	}
	s.mu.RUnlock()
	for _, d := range pending {
		d.fn(d.docs)
	}
}

func matches(data map[string]any, filters []ports.Filter) bool {
	for _, f := range filters {
		if !matchFilter(data[f.Field], f) {
			return false
		}
	}
	return true
}

func matchFilter(v any, f ports.Filter) bool {
	switch f.Op {
	case ports.OpEqual:
		return compareValues(v, f.Value) == 0
	case ports.OpLess:
		return compareValues(v, f.Value) < 0
	case ports.OpLessEqual:
		return compareValues(v, f.Value) <= 0
	case ports.OpGreater:
		return compareValues(v, f.Value) > 0
	case ports.OpGreaterEqual:
		return compareValues(v, f.Value) >= 0
	case ports.OpArrayContains:
		for _, el := range toSlice(v) {
			if compareValues(el, f.Value) == 0 {
				return true
			}
		}
		return false
	case ports.OpIn:
		for _, candidate := range toSlice(f.Value) {
			if compareValues(v, candidate) == 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// compareValues orders two document values. Mixed types compare by their
// string form, which is stable enough for a test store.
func compareValues(a, b any) int {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	if isNumeric(a) && isNumeric(b) {
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func toSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case ports.StringSet:
		out := make([]any, len(s))
		for i, el := range s {
			out[i] = el
		}
		return out
	case []string:
		out := make([]any, len(s))
		for i, el := range s {
			out[i] = el
		}
		return out
	default:
		return nil
	}
}

func arrayUnion(existing, additions any) []any {
	out := toSlice(existing)
	for _, add := range toSlice(additions) {
		found := false
		for _, el := range out {
			if compareValues(el, add) == 0 {
				found = true
				break
			}
		}
		if !found {
			out = append(out, add)
		}
	}
	return out
}

func arrayRemove(existing, removals any) []any {
	out := make([]any, 0)
	for _, el := range toSlice(existing) {
		keep := true
		for _, rm := range toSlice(removals) {
			if compareValues(el, rm) == 0 {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, el)
		}
	}
	return out
}

func deepCopy(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = copyValue(el)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case ports.StringSet:
		out := make(ports.StringSet, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

var _ ports.DocumentStore = (*Store)(nil)
