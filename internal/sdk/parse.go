package sdk

import "strings"

// TargetSeparator ends a record in the target listing.
const TargetSeparator = "----------"

// ParseTargets parses `android list targets` output. The record being
// accumulated when input ends is always appended, even if empty, so the
// result has at least one element. Records are not validated.
func ParseTargets(raw string) []Target {
	var targets []Target
	current := NewTarget()
	for _, line := range splitLines(raw) {
		if line == TargetSeparator {
			targets = append(targets, current)
			current = NewTarget()
			continue
		}
		if strings.HasPrefix(line, "id:") {
			var id string
			if fields := strings.Fields(line); len(fields) > 1 {
				id = fields[1]
			}
			current.Set(KeyID, id)
		} else if current.Has(KeyID) {
			if key, value, ok := strings.Cut(line, ":"); ok {
				current.Set(strings.TrimSpace(key), strings.TrimSpace(value))
			}
		}
	}
	return append(targets, current)
}

// ParseDevices parses `adb devices` output into serials. The first line is
// the tool's header and is dropped without inspection.
func ParseDevices(raw string) []string {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil
	}
	var serials []string
	for _, line := range lines[1:] {
		i := strings.IndexByte(line, '\t')
		if i < 0 {
			continue
		}
		if serial := strings.TrimSpace(line[:i]); serial != "" {
			serials = append(serials, serial)
		}
	}
	return serials
}

// splitLines splits on line breaks, accepting \r\n, with no trailing empty
// element for a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
