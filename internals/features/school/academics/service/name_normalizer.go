// file: internals/features/school/academics/service/name_normalizer.go
package service

import (
	"strings"
)

// titleCaseLabel: lower-case lalu huruf pertama kapital ("c" → "C", "bIO" → "Bio").
func titleCaseLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeSectionNames: CSV bebas → bentuk kanonik "Section <Label>".
// Trim, buang prefix "section" yang sudah ada (case-insensitive),
// title-case label, dedupe case-insensitive.
// "a, B, section c" → ["Section A", "Section B", "Section C"].
func NormalizeSectionNames(csv string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		lower := strings.ToLower(label)
		lower = strings.TrimSpace(strings.TrimPrefix(lower, "section"))
		if lower == "" {
			continue
		}
		name := "Section " + titleCaseLabel(lower)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NormalizeSubjectNames: CSV → nama mata pelajaran title-case, dedupe
// case-insensitive.
func NormalizeSubjectNames(csv string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		name := titleCaseLabel(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
