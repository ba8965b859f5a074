package config

import "strings"

// transformEnvKey converts environment variable names (with the prefix already
// stripped) to koanf paths. The first underscore separates the section from
// the field, so NOTIFY_MAX_PAGE_SIZE becomes notify.max_page_size.
func transformEnvKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}
