package model

// Centralized markers for findings in the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconUnderpaid  = "↓" // Below the band
	IconOverpaid   = "↑" // Above the band
	IconTooDeep    = "»" // Reporting line too long
	IconMissing    = "✗" // Manager reference does not resolve
	IconDuplicate  = "≈" // Duplicate id
	IconCircular   = "↺" // Circular reporting chain
	IconParseError = "!" // Unparseable input line
	IconOK         = " " // Space (OK - no icon to reduce noise)
)

// IconFor returns the marker for a diagnostic kind.
func IconFor(kind DiagnosticKind) string {
	switch kind {
	case KindParseError:
		return IconParseError
	case KindInvalidManager:
		return IconMissing
	case KindDuplicateID:
		return IconDuplicate
	case KindCircularReference:
		return IconCircular
	}
	return IconOK
}
