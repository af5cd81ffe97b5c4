package command

import "strings"

// Outcome classifies one execution. Succeeded is false only when the error
// stream carried a recognizable failure marker or the process could not be
// spawned at all; Diagnostic holds the failure text.
type Outcome struct {
	Succeeded  bool
	Diagnostic string
}

// failureMarkers are the case-insensitive substrings that mark a failed
// run: an explicit error tag, OS error codes, and interpreter crash dumps.
var failureMarkers = []string{"error:", "errno", "traceback"}

// noiseMarkers mark informational stderr lines that must never count as
// failure signal, such as installer upgrade notices.
var noiseMarkers = []string{
	"you should consider upgrading",
	"new release of pip",
	"to update, run:",
}

// manifestMissingTokens combine with the manifest name to detect a missing
// dependency manifest, which triggers the no-install retry.
var manifestMissingTokens = []string{"no such file", "not found", "errno 2"}

const manifestName = "requirements.txt"

// Judge classifies captured stderr into an Outcome. The heuristic is
// substring matching over the noise-suppressed stream; it lives here, apart
// from process spawning, so it can be swapped or tested on its own.
func Judge(stderr string) Outcome {
	cleaned := suppressNoise(stderr)
	lower := strings.ToLower(cleaned)

	for _, marker := range failureMarkers {
		if strings.Contains(lower, marker) {
			return Outcome{Succeeded: false, Diagnostic: strings.TrimSpace(cleaned)}
		}
	}

	return Outcome{Succeeded: true}
}

// suppressNoise drops stderr lines that only carry informational notices.
func suppressNoise(stderr string) string {
	lines := strings.Split(stderr, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if isNoise(line) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	lower := strings.ToLower(line)

	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// manifestMissing reports whether stderr indicates the dependency manifest
// file is absent from the checked-out tree.
func manifestMissing(stderr string) bool {
	lower := strings.ToLower(stderr)

	if !strings.Contains(lower, manifestName) {
		return false
	}

	for _, token := range manifestMissingTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	return false
}
