// Package dbinit prepares an application database for first use: it ensures
// the schema exists, checks that sessions work and can seed a test account.
//
// The cmd/dbinit command wires these steps to a terminal; Bootstrapper and
// Seeder can also be driven directly with an Engine built by the database
// package.
package dbinit
