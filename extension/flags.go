// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "max-chunks" -> FlagMaxChunks).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagBytes  = "bytes"  // Treat argument as a byte list
	FlagLocal  = "local"  // Use local (project) config scope
	FlagStrict = "strict" // Treat a broken reserved bit as failure

	// String flags

	FlagIgnore = "ignore" // Comma-separated chunk types to leave out

	// Integer flags

	FlagLimit     = "limit"      // Limit number of results
	FlagMaxChunks = "max-chunks" // Per-file chunk listing limit
)
