package plan

// RelationType identifies a directed association between two tasks.
//
// Only forward types are rendered. The reverse forms exist because the
// issue source reports each relation from both endpoints' perspectives;
// NormalizeRelations flips them back so each logical relation appears
// exactly once on the timeline.
type RelationType string

const (
	RelationRelates    RelationType = "relates"
	RelationDuplicates RelationType = "duplicates"
	RelationBlocks     RelationType = "blocks"
	RelationPrecedes   RelationType = "precedes"
	RelationCopiedTo   RelationType = "copied_to"

	// Reverse forms as reported by the issue source.
	RelationDuplicated RelationType = "duplicated"
	RelationBlocked    RelationType = "blocked"
	RelationFollows    RelationType = "follows"
	RelationCopiedFrom RelationType = "copied_from"
)

// reverseOf maps a reverse form to its forward form. Flipping a reverse
// relation also swaps its source and target.
var reverseOf = map[RelationType]RelationType{
	RelationDuplicated: RelationDuplicates,
	RelationBlocked:    RelationBlocks,
	RelationFollows:    RelationPrecedes,
	RelationCopiedFrom: RelationCopiedTo,
}

// ForwardTypes lists the renderable relation types in the order a link
// gesture offers them for selection.
var ForwardTypes = []RelationType{
	RelationRelates,
	RelationDuplicates,
	RelationBlocks,
	RelationPrecedes,
	RelationCopiedTo,
}

// Forward returns the forward form of the type and whether the relation's
// endpoints must be swapped to preserve its direction.
func (rt RelationType) Forward() (RelationType, bool) {
	if fwd, ok := reverseOf[rt]; ok {
		return fwd, true
	}
	return rt, false
}

// IsForward reports whether rt is one of the renderable forward types.
func (rt RelationType) IsForward() bool {
	_, flipped := rt.Forward()
	if flipped {
		return false
	}
	for _, f := range ForwardTypes {
		if rt == f {
			return true
		}
	}
	return false
}

// Temporal reports whether the type implies sequencing between the two
// tasks. Temporal arrows connect the source's end edge to the target's
// start edge; non-temporal arrows connect bar centers.
func (rt RelationType) Temporal() bool {
	return rt == RelationBlocks || rt == RelationPrecedes
}

// Relation is a directed association between two tasks.
type Relation struct {
	ID     int          `json:"id" yaml:"id"`
	Type   RelationType `json:"type" yaml:"type"`
	Source int          `json:"source" yaml:"source"`
	Target int          `json:"target" yaml:"target"`
}

// NormalizeRelations returns the renderable subset of rels:
//   - self-relations (source == target) are dropped as invalid
//   - reverse forms are flipped to their forward form with endpoints swapped
//   - unknown types are dropped
//
// The input is never mutated.
func NormalizeRelations(rels []Relation) []Relation {
	out := make([]Relation, 0, len(rels))
	for _, r := range rels {
		if r.Source == r.Target {
			continue
		}
		fwd, flipped := r.Type.Forward()
		if flipped {
			r.Type = fwd
			r.Source, r.Target = r.Target, r.Source
		}
		if !r.Type.IsForward() {
			continue
		}
		out = append(out, r)
	}
	return out
}
