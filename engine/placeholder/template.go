package placeholder

import (
	"context"
	"regexp"
)

// tokenRe matches {{refStep:dataName}} occurrences. Both parts must be
// non-empty and may not contain braces or further colons.
var tokenRe = regexp.MustCompile(`\{\{([^{}:]+):([^{}:]+)\}\}`)

// SubstituteTemplate replaces every {{refStep:dataName}} token in template
// with the resolver's value for it. Tokens are independent of each other and
// resolved in document order.
//
// A token the resolver cannot resolve is left verbatim in the output: a
// literal {{...}} in a delivered message is the visible trace of a
// misauthored template, which an empty string would hide.
func SubstituteTemplate(ctx context.Context, template string, resolve Resolver) string {
	if template == "" || resolve == nil {
		return template
	}
	return tokenRe.ReplaceAllStringFunc(template, func(token string) string {
		parts := tokenRe.FindStringSubmatch(token)
		value, ok := resolve(ctx, parts[1], parts[2])
		if !ok {
			return token
		}
		return value
	})
}

// HasTokens reports whether the text contains at least one placeholder token.
func HasTokens(text string) bool {
	return tokenRe.MatchString(text)
}
