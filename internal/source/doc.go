// Package source provides indicator sources backed by the outside world: a
// shell command that settles when it exits, and a line stream that turns
// progress printed by another program into fractions.
package source
