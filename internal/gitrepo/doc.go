// Package gitrepo opens git working trees and manages their remotes by
// shelling out to the git executable.
//
// RepositoryManager opens repositories rooted exactly at a path and discovers
// the enclosing repository of a working directory. Repository reads and
// mutates the remote set and lists the submodules registered in .gitmodules.
package gitrepo
