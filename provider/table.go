package provider

import (
	"fmt"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
)

// Table is a bidirectional mapping between a generic enum and a provider's native vocabulary.
// Tables are built once at package init so that a broken mapping fails at startup.
type Table[G comparable, N comparable] struct {
	provider string
	what     string
	native   map[G]N
	generic  map[N]G
}

// Pair is one row of a Table.
type Pair[G comparable, N comparable] struct {
	Generic G
	Native  N
}

// P builds a Pair.
func P[G comparable, N comparable](generic G, native N) Pair[G, N] {
	return Pair[G, N]{Generic: generic, Native: native}
}

// NewTable builds a table from rows. It panics when two rows share a generic or a native value.
func NewTable[G comparable, N comparable](provider, what string, pairs ...Pair[G, N]) *Table[G, N] {
	t := &Table[G, N]{
		provider: provider,
		what:     what,
		native:   make(map[G]N, len(pairs)),
		generic:  make(map[N]G, len(pairs)),
	}

	for _, p := range pairs {
		if _, ok := t.native[p.Generic]; ok {
			panic(fmt.Sprintf("%s %s table: %v mapped twice", provider, what, p.Generic))
		}
		if _, ok := t.generic[p.Native]; ok {
			panic(fmt.Sprintf("%s %s table: native %v mapped twice", provider, what, p.Native))
		}
		t.native[p.Generic] = p.Native
		t.generic[p.Native] = p.Generic
	}

	return t
}

// Total panics unless every value of domain is mapped.
func (t *Table[G, N]) Total(domain ...G) *Table[G, N] {
	for _, g := range domain {
		if _, ok := t.native[g]; !ok {
			panic(fmt.Sprintf("%s %s table: %v is not mapped", t.provider, t.what, g))
		}
	}
	return t
}

// Alias makes native decode to generic without changing how generic encodes.
func (t *Table[G, N]) Alias(native N, generic G) *Table[G, N] {
	if _, ok := t.generic[native]; ok {
		panic(fmt.Sprintf("%s %s table: alias %v shadows a mapped value", t.provider, t.what, native))
	}
	t.generic[native] = generic
	return t
}

// Native encodes a generic value.
func (t *Table[G, N]) Native(generic G) (N, error) {
	n, ok := t.native[generic]
	if !ok {
		return n, fault.New(fault.Validation, t.provider, "%s %v has no native form", t.what, generic)
	}
	return n, nil
}

// Generic decodes a native value. Unknown values are a protocol error.
func (t *Table[G, N]) Generic(native N) (G, error) {
	g, ok := t.generic[native]
	if !ok {
		return g, fault.New(fault.Protocol, t.provider, "unknown %s %v", t.what, native)
	}
	return g, nil
}

// StatusTable builds a list-status table and checks that it covers every status.
func StatusTable[N comparable](provider string, pairs ...Pair[entry.Status, N]) *Table[entry.Status, N] {
	return NewTable(provider, "list status", pairs...).Total(entry.Statuses...)
}
