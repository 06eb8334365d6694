// Package repository provides a generic repository built on Bun that runs on
// a database, a connection or a transaction alike.
package repository
