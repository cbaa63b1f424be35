// Package ardoqtest provides an in-memory ardoq.Store for tests.
package ardoqtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Calls counts store invocations per operation.
type Calls struct {
	SearchComponent int
	CreateComponent int
	SearchReference int
	CreateReference int
	UpdateReference int
	SubmitBatch     int
}

// Total returns the number of store calls.
func (c Calls) Total() int {
	return c.SearchComponent + c.CreateComponent + c.SearchReference +
		c.CreateReference + c.UpdateReference + c.SubmitBatch
}

// Store is an in-memory ardoq.Store. Set the Err fields to inject failures.
type Store struct {
	mu         sync.Mutex
	nextID     int
	components map[string]ardoq.Component
	references []ardoq.Reference
	types      map[string]ardoq.Relationship
	calls      Calls

	// Updates records every version update as "<id>=<version>".
	Updates []string

	SearchComponentErr error
	CreateComponentErr error
	SearchReferenceErr error
	CreateReferenceErr error
	UpdateReferenceErr error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		components: make(map[string]ardoq.Component),
		types:      make(map[string]ardoq.Relationship),
	}
}

func componentKey(rootWorkspace, name string) string {
	return rootWorkspace + "/" + name
}

// AddComponent seeds a component and returns its id.
func (s *Store) AddComponent(rootWorkspace, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addComponentLocked(rootWorkspace, name)
}

func (s *Store) addComponentLocked(rootWorkspace, name string) string {
	s.nextID++
	id := fmt.Sprintf("comp-%d", s.nextID)
	s.components[componentKey(rootWorkspace, name)] = ardoq.Component{ID: id, Name: name}
	return id
}

// AddReference seeds a reference and returns its id.
func (s *Store) AddReference(source, target string, rel ardoq.Relationship, version string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addReferenceLocked(ardoq.ReferenceBody{Source: source, Target: target, Type: rel, Version: version})
}

func (s *Store) addReferenceLocked(body ardoq.ReferenceBody) string {
	s.nextID++
	id := fmt.Sprintf("ref-%d", s.nextID)
	s.references = append(s.references, ardoq.Reference{
		ID:      id,
		Source:  body.Source,
		Target:  body.Target,
		Version: body.Version,
	})
	s.types[id] = body.Type
	return id
}

// Reference returns the stored reference from source to target.
func (s *Store) Reference(source, target string) (ardoq.Reference, ardoq.Relationship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ref := range s.references {
		if ref.Source == source && ref.Target == target {
			return ref, s.types[ref.ID], true
		}
	}
	return ardoq.Reference{}, 0, false
}

// ReferenceCount returns the number of stored references.
func (s *Store) ReferenceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.references)
}

// Calls returns the invocation counts so far.
func (s *Store) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ResetCalls zeroes the invocation counts.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = Calls{}
}

// SearchComponent implements ardoq.Store.
func (s *Store) SearchComponent(_ context.Context, rootWorkspace, name string) ([]ardoq.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.SearchComponent++

	if s.SearchComponentErr != nil {
		return nil, s.SearchComponentErr
	}
	if c, ok := s.components[componentKey(rootWorkspace, name)]; ok {
		return []ardoq.Component{c}, nil
	}
	return []ardoq.Component{}, nil
}

// CreateComponent implements ardoq.Store.
func (s *Store) CreateComponent(_ context.Context, body ardoq.ComponentBody) (ardoq.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.CreateComponent++

	if s.CreateComponentErr != nil {
		return ardoq.Component{}, s.CreateComponentErr
	}
	id := s.addComponentLocked(body.RootWorkspace, body.Name)
	return ardoq.Component{ID: id, Name: body.Name}, nil
}

// SearchReference implements ardoq.Store.
func (s *Store) SearchReference(_ context.Context, source, target string) ([]ardoq.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.SearchReference++

	if s.SearchReferenceErr != nil {
		return nil, s.SearchReferenceErr
	}
	var out []ardoq.Reference
	for _, ref := range s.references {
		if ref.Source == source && ref.Target == target {
			out = append(out, ref)
		}
	}
	return out, nil
}

// CreateReference implements ardoq.Store.
func (s *Store) CreateReference(_ context.Context, body ardoq.ReferenceBody) (ardoq.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.CreateReference++

	if s.CreateReferenceErr != nil {
		return ardoq.Reference{}, s.CreateReferenceErr
	}
	id := s.addReferenceLocked(body)
	return ardoq.Reference{ID: id, Source: body.Source, Target: body.Target, Version: body.Version}, nil
}

// UpdateReferenceVersion implements ardoq.Store.
func (s *Store) UpdateReferenceVersion(_ context.Context, id, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.UpdateReference++

	if s.UpdateReferenceErr != nil {
		return s.UpdateReferenceErr
	}
	for i := range s.references {
		if s.references[i].ID == id {
			s.references[i].Version = version
			s.Updates = append(s.Updates, id+"="+version)
			return nil
		}
	}
	return errors.NewNotFoundError("reference", id)
}

// BatchStore is a Store that also accepts batch submissions.
type BatchStore struct {
	*Store

	// Submitted holds every batch received.
	Submitted []*ardoq.Batch
}

// NewBatchStore creates an empty BatchStore.
func NewBatchStore() *BatchStore {
	return &BatchStore{Store: NewStore()}
}

// SubmitBatch implements ardoq.BatchSubmitter.
func (s *BatchStore) SubmitBatch(_ context.Context, batch *ardoq.Batch) (ardoq.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.SubmitBatch++
	s.Submitted = append(s.Submitted, batch)

	for _, c := range batch.Creates() {
		s.addReferenceLocked(c.Body)
	}
	for _, u := range batch.Updates() {
		for i := range s.references {
			if s.references[i].ID == u.ID {
				s.references[i].Version = u.Body.Version
				s.Updates = append(s.Updates, u.ID+"="+u.Body.Version)
			}
		}
	}
	return ardoq.BatchResult{Created: len(batch.Creates()), Updated: len(batch.Updates())}, nil
}
