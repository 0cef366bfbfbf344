package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from a problem file.
// It rejects names that could collide with synthetic variables or smuggle
// control sequences into rendered output.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
//   - No "__...__" form (reserved for synthetic boundary variables)
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}

	if len(id) > 4 && strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__") {
		return New(ErrCodeInvalidNode, "node id %q uses a reserved form", id)
	}

	return nil
}

// ValidateGroupName validates a group name from a problem file.
// Group names feed synthetic variable ids, so the same conservative rules
// apply as for node ids minus the reserved-form check.
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSpec, "group name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidSpec, "group name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "group name contains invalid control characters")
		}
	}

	return nil
}

// outputFormats lists the renderable output formats.
var outputFormats = map[string]bool{
	"json": true,
	"svg":  true,
	"png":  true,
	"pdf":  true,
	"dot":  true,
}

// ValidateFormat validates an output format name.
// Supported formats: json, svg, png, pdf, dot.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !outputFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q (expected json, svg, png, pdf, or dot)", format)
	}

	return nil
}
