// Package store implements the persistence collaborator on a local SQLite
// database: contacts, incident records and a small settings key-value
// surface. Settings reads fall back to the supplied default on failure, so
// the engine never crashes on storage problems.
package store
