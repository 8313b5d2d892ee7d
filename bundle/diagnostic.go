package bundle

// Severity represents diagnostic severity
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Diagnostic represents a build message attached to a source line
type Diagnostic struct {
	Severity Severity `bson:"severity"`
	Start    int32    `bson:"start"`
	Message  string   `bson:"message"`
}

// Diagnostics represents a diagnostics record
type Diagnostics struct {
	Diagnostics []Diagnostic `bson:"diagnostics"`
}
