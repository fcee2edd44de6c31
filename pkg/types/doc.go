// Package types defines the Game entity, the Ledger interface, storage
// configuration, and the standard errors for the drum game.
package types
