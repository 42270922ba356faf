// Package pgattach provides the connection configuration for attaching a
// PostgreSQL connection pool to a gin application.
//
// A Config is built fluently and stays immutable afterwards: every setter
// returns an updated copy, so a base configuration can be shared and
// specialized without surprises.
//
// Usage example:
//
//	cfg := pgattach.NewConfig().
//		WithDatabase("sessions").
//		WithUsername("app").
//		WithPassword("secret").
//		WithHost("db.internal").
//		WithPort(5432)
//
// Validation is eager: Validate reports empty fields before any connection
// attempt is made, so a misconfigured application fails at startup instead
// of at the first request.
package pgattach
