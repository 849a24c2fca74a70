package sensors

import "strings"

// Expand substitutes ${name} references in each template line with values
// from the table. Unknown names expand to "${name}" unchanged so a typo is
// visible on screen instead of silently vanishing. A literal "$$" yields
// one "$".
func Expand(lines []string, values map[string]string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = expandLine(line, values)
	}
	return out
}

func expandLine(line string, values map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		if line[i] != '$' {
			b.WriteByte(line[i])
			i++
			continue
		}
		if i+1 < len(line) && line[i+1] == '$' {
			b.WriteByte('$')
			i += 2
			continue
		}
		if i+1 < len(line) && line[i+1] == '{' {
			end := strings.IndexByte(line[i+2:], '}')
			if end >= 0 {
				name := line[i+2 : i+2+end]
				if v, ok := values[name]; ok {
					b.WriteString(v)
				} else {
					b.WriteString(line[i : i+3+end])
				}
				i += 3 + end
				continue
			}
		}
		b.WriteByte('$')
		i++
	}
	return b.String()
}
