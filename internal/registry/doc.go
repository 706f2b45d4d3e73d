// Package registry indexes the cells of one diagram page.
//
// Cells refer to each other only by identifier (parent, source, target).
// The Registry resolves an identifier to a slot, the cell's position in
// page order, so validators never hold pointers between cells and a
// malformed document cannot create self-referential structures.
//
// The Registry also records identifier problems per slot: the second
// occurrence of every repeated identifier, and cells with no identifier at
// all. The first occurrence of a duplicated identifier wins lookups, so the
// remaining checks can still run.
package registry
