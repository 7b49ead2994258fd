// Package quicksetup loads quick setup documents and drives a wizard over
// their stages.
//
// The wizard owns per-stage data and moves between stages when its next,
// prev and save buttons are pressed. Validation is supplied by the caller via
// a Validator; this package only gates transitions on the messages it
// returns.
package quicksetup
