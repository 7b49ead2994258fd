// Package stage builds the renderable nodes for one wizard stage: a read-only
// recap of a completed stage and the editable content of the active stage.
//
// Both constructors return nil, the "nothing to render" sentinel, when they
// receive no widgets. Callers treat nil as a valid outcome.
package stage
