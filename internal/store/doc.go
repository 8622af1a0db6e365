// Package store defines the persistence boundary of the review engine: the
// interfaces the engine requires from its storage collaborator, the sentinel
// errors those implementations return, and transaction plumbing shared by
// all backends.
//
// All read interfaces are owner-scoped and return plain immutable value
// records; a caller can never observe another owner's rows. Mutations are
// scoped by id+owner together, which makes "does not exist" and "belongs to
// someone else" deliberately indistinguishable.
package store
