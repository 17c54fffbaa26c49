// Package remoteconfig reads and writes .gemote documents: the declared
// remotes of a repository and, recursively, of its sub-repositories.
//
// Documents are TOML by default. Files ending in .yaml or .yml use YAML with
// the same schema.
package remoteconfig
