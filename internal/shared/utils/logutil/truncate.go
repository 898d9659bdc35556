package logutil

// TruncateForLog shortens s to maxLen characters and appends "..." when it
// was cut. Scan tokens are logged through this so only a prefix ever lands
// in the logs.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
