package core

// DebugWriter is a function type for writing diagnostic messages. Platform
// mains point it at stdout, a UART, or whatever console the board has.
type DebugWriter func(string)

var (
	// debugPrintln is the platform-specific output function. No-op by
	// default so the core never blocks on a missing console.
	debugPrintln DebugWriter = func(string) {}

	// debugEnabled gates diagnostic output; off by default.
	debugEnabled bool
)

// SetDebugWriter sets the platform-specific debug output function.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables diagnostic output.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether diagnostic output is enabled.
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a diagnostic message if output is enabled.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}
