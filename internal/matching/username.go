package matching

import "regexp"

var usernamePattern = regexp.MustCompile(`github\.com/([a-zA-Z0-9-]+)(?:/|$)`)

// Username extracts a GitHub username from the resume's hyperlinks,
// returning the first one found or "" when none of the links carry one.
func Username(hyperlinks []string) string {
	for _, link := range hyperlinks {
		if m := usernamePattern.FindStringSubmatch(link); m != nil {
			return m[1]
		}
	}
	return ""
}
