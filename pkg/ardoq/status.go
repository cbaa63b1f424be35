package ardoq

import (
	"encoding/json"
	"fmt"
)

// ComponentStatus is the outcome of resolving one component.
type ComponentStatus int

// Component statuses.
const (
	StatusCreated ComponentStatus = iota
	StatusExisting
	StatusError
)

// String returns the lower-case status name.
func (s ComponentStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusExisting:
		return "existing"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalJSON encodes the status as its name.
func (s ComponentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *ComponentStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []ComponentStatus{StatusCreated, StatusExisting, StatusError} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown component status %q", name)
}

// MarshalYAML encodes the status as its name.
func (s ComponentStatus) MarshalYAML() (any, error) {
	return s.String(), nil
}

// ReferenceOutcome is the result of reconciling one reference.
type ReferenceOutcome int

// Reference outcomes.
const (
	ReferenceUnchanged ReferenceOutcome = iota
	ReferenceCreated
	ReferenceUpdated
)

// String returns the lower-case outcome name.
func (o ReferenceOutcome) String() string {
	switch o {
	case ReferenceUnchanged:
		return "unchanged"
	case ReferenceCreated:
		return "created"
	case ReferenceUpdated:
		return "updated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalJSON encodes the outcome as its name.
func (o ReferenceOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an outcome name.
func (o *ReferenceOutcome) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []ReferenceOutcome{ReferenceUnchanged, ReferenceCreated, ReferenceUpdated} {
		if candidate.String() == name {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown reference outcome %q", name)
}

// MarshalYAML encodes the outcome as its name.
func (o ReferenceOutcome) MarshalYAML() (any, error) {
	return o.String(), nil
}
