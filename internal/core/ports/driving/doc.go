// Package driving defines the interfaces through which front ends drive
// the core (primary/inbound ports). The CLI and TUI depend on these
// interfaces; core services implement them.
package driving
