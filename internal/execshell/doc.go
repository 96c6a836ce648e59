// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions sfreport uses to run
// the Screaming Frog SEO Spider launcher in a testable manner.
package execshell
