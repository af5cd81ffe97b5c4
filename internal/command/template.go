package command

import "strings"

// Substitution tokens accepted inside commands and pre-commands.
const (
	TargetToken  = "{target}"
	OutfileToken = "{outfile}"
)

// venvDir is where the managed virtual environment is created, relative to
// the process working directory.
const venvDir = ".gitdrift-venv"

// ResolveTokens substitutes the checked-out tree path and the output file
// path into a command string.
func ResolveTokens(s, target, outfile string) string {
	return strings.NewReplacer(TargetToken, target, OutfileToken, outfile).Replace(s)
}

// Resolve returns a copy of the spec with tokens substituted in every
// candidate and both pre-command variants.
func (s Spec) Resolve(target, outfile string) Spec {
	out := s
	out.Candidates = make([]string, len(s.Candidates))

	for i, candidate := range s.Candidates {
		out.Candidates[i] = ResolveTokens(candidate, target, outfile)
	}

	out.PreCommand = ResolveTokens(s.PreCommand, target, outfile)
	out.NoInstall = ResolveTokens(s.NoInstall, target, outfile)

	return out
}

// StripInstall derives the no-install pre-command variant by dropping chain
// segments that invoke the package installer. Remaining segments are
// rejoined as a loose chain.
func StripInstall(pre string) string {
	var kept []string

	for _, segment := range splitChain(pre) {
		if strings.Contains(segment, "pip install") {
			continue
		}

		kept = append(kept, segment)
	}

	return strings.Join(kept, "; ")
}

// splitChain splits a shell chain on `;` and `&&` separators.
func splitChain(s string) []string {
	var parts []string

	for _, piece := range strings.Split(strings.ReplaceAll(s, "&&", ";"), ";") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			parts = append(parts, piece)
		}
	}

	return parts
}

// VenvPreCommands builds the canonical pre-command pair for a virtual
// environment interpreter: the full variant installs the manifest of the
// checked-out tree, the fallback only creates and activates the
// environment.
func VenvPreCommands(interpreter string) (full, noInstall string) {
	activate := interpreter + " -m venv " + venvDir + "; . " + venvDir + "/bin/activate"

	return activate + "; pip install -r " + TargetToken + "/requirements.txt", activate
}
