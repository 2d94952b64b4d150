package logging

// Field names for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Classification fields.
	FieldGrammar  = "grammar"
	FieldGrammars = "grammars"
	FieldTag      = "tag"
	FieldDialect  = "dialect"
	FieldPolicy   = "duplicate_refs"
	FieldLine     = "line"
	FieldKind     = "kind"
	FieldJobs     = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldRegions         = "regions"
	FieldReferences      = "references"
	FieldDiagnostics     = "diagnostics"
	FieldReused          = "reused"
	FieldElapsed         = "elapsed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
