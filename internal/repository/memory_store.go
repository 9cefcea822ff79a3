package repository

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domrepo "InvestAgent/internal/domain/repository"
)

// MemoryStore is a process-local Store used for tests and mongo-less runs.
// Documents round-trip through bson so tags and time encoding match MongoDB.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]bson.M
	unique map[string][]string
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithUniqueIndex enforces single-field uniqueness for fields of collection,
// mirroring the unique indexes created on MongoDB.
func WithUniqueIndex(collection string, fields ...string) MemoryOption {
	return func(s *MemoryStore) {
		s.unique[collection] = append(s.unique[collection], fields...)
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data:   make(map[string][]bson.M),
		unique: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Find(ctx context.Context, collection string, filter map[string]any, dest any, opts ...domrepo.FindOption) error {
	fo := &domrepo.FindOptions{}
	for _, opt := range opts {
		opt(fo)
	}

	// Matched docs are copied before the lock drops: sorting and decoding
	// happen outside it, and UpdateOne patches stored maps in place.
	s.mu.RLock()
	matched := make([]bson.M, 0)
	for _, doc := range s.data[collection] {
		if matches(doc, filter) {
			matched = append(matched, cloneDoc(doc))
		}
	}
	s.mu.RUnlock()

	if fo.SortField != "" {
		field, desc := fo.SortField, fo.SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareValues(matched[i][field], matched[j][field]) < 0
			if desc {
				return !less
			}
			return less
		})
	}
	if fo.Limit > 0 && len(matched) > fo.Limit {
		matched = matched[:fo.Limit]
	}

	return decodeSlice(matched, dest)
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, filter map[string]any, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.data[collection] {
		if matches(doc, filter) {
			return decodeDoc(doc, dest)
		}
	}
	return domrepo.ErrNotFound
}

func (s *MemoryStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	normalized, err := normalize(doc)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, field := range s.unique[collection] {
		value, ok := normalized[field]
		if !ok {
			continue
		}
		for _, existing := range s.data[collection] {
			if ev, ok := existing[field]; ok && equalValues(ev, value) {
				return "", domrepo.ErrDuplicateKey
			}
		}
	}

	s.data[collection] = append(s.data[collection], normalized)

	id, _ := normalized["_id"].(string)
	return id, nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, collection string, filter map[string]any, patch map[string]any) (int64, error) {
	normalized, err := normalize(patch)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.data[collection] {
		if matches(doc, filter) {
			for k, v := range normalized {
				doc[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.data[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			s.data[collection] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) Health(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// normalize runs a value through bson so stored documents carry the same
// representation mongo-driver would persist (primitive.DateTime for times).
func normalize(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := bson.M{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// cloneDoc copies the top level of a stored document. UpdateOne only ever
// replaces top-level keys, so this is enough to decouple readers from writers.
func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func decodeDoc(doc bson.M, dest any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, dest)
}

func decodeSlice(docs []bson.M, dest any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return domrepo.ErrNotFound
	}
	slice := dv.Elem()
	elemType := slice.Type().Elem()

	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, doc := range docs {
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}

func matches(doc bson.M, filter map[string]any) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if !equalValues(got, want) {
			return false
		}
	}
	return true
}

// equalValues is strict equality across bson-normalized and raw filter values.
func equalValues(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if as, ok := a.(string); ok {
		bs, bok := b.(string)
		return bok && as == bs
	}
	if ab, ok := a.(bool); ok {
		bb, bok := b.(bool)
		return bok && ab == bb
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders bson-normalized values for sorting. Mixed incomparable
// types sort as equal.
func compareValues(a, b any) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		if ab == bb {
			return 0
		}
		if !ab {
			return -1
		}
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}
