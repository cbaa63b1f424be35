package ardoq

import "strconv"

// Relationship is the kind of edge between two components.
// Its value is the remote reference type id.
type Relationship int

// Relationships used by the adapter.
const (
	DependsOn Relationship = 2
	HostedIn  Relationship = 3
)

// String returns a readable name for the relationship.
func (r Relationship) String() string {
	switch r {
	case DependsOn:
		return "depends_on"
	case HostedIn:
		return "hosted_in"
	default:
		return "relationship(" + strconv.Itoa(int(r)) + ")"
	}
}
