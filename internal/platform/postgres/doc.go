// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store. All implementations accept a
// store.DBTX so they can run against either a database connection or a
// transaction, and translate driver errors into the store package's
// sentinel errors.
package postgres
