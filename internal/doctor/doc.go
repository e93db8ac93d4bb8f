// Package doctor provides the diagnostics behind "shim check".
//
// The checks cover:
//
//   - Configuration: config.toml parses, has no unknown settings, and the
//     shim directory exists.
//
//   - Shim files: every file can be read and parsed, and programs defined
//     in more than one file are reported as shadowed.
//
//   - PATH: every shimmed program and the command of every hook line
//     (with $@ substituted by nothing) resolves on PATH.
//
// # Usage
//
//	report := doctor.Check(doctor.Input{Config: cfg, Files: files}, runner)
//	err := doctor.Run(ctx, in, runner) // check and print, ErrIssuesFound on issues
//
// Each [Issue] carries a [IssueCategory] and a description.
package doctor
