// Package postgres provides the PostgreSQL implementation of the
// store.TaskStore interface. It handles query execution, mapping between
// rows and domain.Task values, and classification of driver errors
// (pgconn.PgError codes) into the store error taxonomy.
//
// Connections are opened through the pgx stdlib driver ("pgx") and passed in
// as a store.DBTX, so the same store runs on a *sql.DB or inside a *sql.Tx.
package postgres
