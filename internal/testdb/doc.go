// Package testdb provides helpers for tests that talk to a real PostgreSQL
// database.
//
// Tests connect through GetTestDBWithT, which skips the test when
// DATABASE_URL is unset, and run their statements inside WithTx so every
// change is rolled back when the test finishes:
//
//	func TestTaskStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
