// Package session holds the table under analysis and applies operations to
// it.
//
// A Session starts empty. LoadFile and Fetch replace the current table;
// Returns, Volatility and Clean derive a new table and swap it in. Every
// other operation reads the current table. A failed operation is logged
// with what was attempted and why, the error is returned to the caller and
// the current table is left as it was, so an interactive loop can carry on.
// Operations on a session without a table fail with goeda.ErrNoTable.
package session
