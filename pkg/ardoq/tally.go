package ardoq

import "sync"

// Tally counts component resolutions by status.
type Tally struct {
	Created  int `json:"created" yaml:"created"`
	Existing int `json:"existing" yaml:"existing"`
	Error    int `json:"error" yaml:"error"`
}

// Total returns the number of resolutions counted.
func (t Tally) Total() int {
	return t.Created + t.Existing + t.Error
}

// ReferenceTally counts reference reconciliations by outcome.
type ReferenceTally struct {
	Created   int `json:"created" yaml:"created"`
	Updated   int `json:"updated" yaml:"updated"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Aggregator accumulates tallies for one request. It is safe for concurrent use.
type Aggregator struct {
	mu         sync.Mutex
	components Tally
	references ReferenceTally
}

// RecordComponent counts one component status.
func (a *Aggregator) RecordComponent(s ComponentStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch s {
	case StatusCreated:
		a.components.Created++
	case StatusExisting:
		a.components.Existing++
	default:
		a.components.Error++
	}
}

// RecordReference counts one reference outcome, or a failure when err is non-nil.
func (a *Aggregator) RecordReference(o ReferenceOutcome, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.references.Failed++
		return
	}
	switch o {
	case ReferenceCreated:
		a.references.Created++
	case ReferenceUpdated:
		a.references.Updated++
	default:
		a.references.Unchanged++
	}
}

// Components returns the component tally so far.
func (a *Aggregator) Components() Tally {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.components
}

// References returns the reference tally so far.
func (a *Aggregator) References() ReferenceTally {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.references
}
