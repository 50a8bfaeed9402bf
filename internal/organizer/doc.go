// Package organizer copies tag-encoded files from a flat source directory
// into the nested o/f/l/p destination tree.
//
// Files are processed strictly sequentially; the first malformed filename or
// filesystem failure aborts the run with no cleanup of output already
// written. A file lock on the destination keeps concurrent runs from racing
// on directory creation and overwrites. Planning is separated from execution
// so the dry-run command can show the exact copies a run would perform.
package organizer
