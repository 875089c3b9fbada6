// Package codec implements Trot's text encode/decode surface (spec §6):
// `encode(list) → byte_list` and `decode(byte_list) → list`.
//
// The spec leaves the exact byte grammar unspecified beyond its round-trip
// laws (P5: decode(encode(L)) compares equal to L; the format is a fixed
// point after one round trip). This package defines one: a label-referenced
// bracket grammar that numbers every list in DFS pre-order the first time
// it is reached and lets any later reference to that same list (a shared
// child or a cycle) stand in as a bare reference to the label instead of
// writing the list out again.
//
//	value   := int | list
//	int     := '-'? digit+
//	list    := '#' label type tag '[' value* ']' | '@' label
//	type    := 't' int
//	tag     := 'g' int
//	label   := digit+
//
// Example: `#1 t0 g0 [ 1 2 #2 t0 g0 [ @1 ] ]` is a two-list graph where
// the outer list holds two ints and an inner list that refers back to the
// outer one.
//
// Labels are assigned purely by traversal order, not by anything the
// encoder remembers about the source list's identity, so re-encoding a
// freshly decoded graph reproduces the same bytes: that is what makes the
// format a fixed point after one round trip. A `#label[...]` shell is
// registered in the decoder's label table before its children are parsed,
// so a `@label` reference to a not-yet-closed list (a genuine cycle, not
// just sharing) resolves correctly. A `@label` naming a label that has
// never been opened is a decode error.
package codec
