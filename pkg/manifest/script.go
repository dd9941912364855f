package manifest

import (
	"strings"
)

// preamble opens every generated script. Setting DEBUG in the
// environment turns on line-numbered tracing.
const preamble = `#!/bin/bash
# generated by manifest; do not edit

if [ -n "$DEBUG" ]; then
    PS4=':${LINENO}+'
    set -x
fi
`

// BuildScript assembles the final script: preamble, then each required
// shared shell function exactly once in first-seen order, then each
// non-empty section fragment in caller-supplied order. All filtering
// and sorting decisions are final by this point.
func BuildScript(sections []Section) string {
	var b strings.Builder
	b.WriteString(preamble)

	seen := make(map[string]bool)
	for _, section := range sections {
		for _, fn := range section.Functions() {
			if strings.TrimSpace(fn) == "" || seen[fn] {
				continue
			}
			seen[fn] = true
			b.WriteString("\n")
			b.WriteString(fn)
		}
	}

	for _, section := range sections {
		fragment := section.Render()
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(fragment)
	}

	return b.String()
}
