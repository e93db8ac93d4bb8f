package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with config.toml or the shim directory.
	CategoryConfig IssueCategory = "config"
	// CategoryShims represents unreadable, invalid, or shadowed shim files.
	CategoryShims IssueCategory = "shims"
	// CategoryPath represents programs or hook commands missing from PATH.
	CategoryPath IssueCategory = "path"
)

// Issue represents a problem detected by check.
type Issue struct {
	Key         string        // file path, program, or hook reference
	Description string        // human-readable description
	Category    IssueCategory // issue category
}

// Stats tracks what was checked successfully.
type Stats struct {
	Files         int // shim files parsed
	Shims         int // registered shims
	ProgramsFound int // shimmed programs found on PATH
	Commands      int // distinct hook commands
	CommandsFound int // hook commands found on PATH
}

// Report is the result of a check run.
type Report struct {
	Stats  Stats
	Issues []Issue
}
