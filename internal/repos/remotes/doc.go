// Package remotes computes and applies the actions that bring a repository's
// remote set in line with a declared set.
package remotes
