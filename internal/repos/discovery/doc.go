// Package discovery finds the immediate sub-repositories of a repository,
// combining registered submodules with a filesystem scan that stops at git
// boundaries.
package discovery
