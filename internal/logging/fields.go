package logging

// Field names for structured logging.
const (
	FieldError = "error"
	FieldPath  = "path"
	FieldPaths = "paths"
	FieldFiles = "files"

	// Indentation fields.
	FieldFirstLine = "first_line"
	FieldLastLine  = "last_line"
	FieldIndent    = "leading_whitespace"
	FieldBlocks    = "blocks"

	// Run fields.
	FieldJobs     = "jobs"
	FieldWrite    = "write"
	FieldCheck    = "check"
	FieldDiff     = "diff"
	FieldChanged  = "changed"
	FieldBackedUp = "backed_up"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
