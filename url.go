package gtfs

import "regexp"

var urlRegex = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}|` +
	`\[[A-F0-9]*:[A-F0-9:]+\])` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// URL is a validated http, https, ftp or ftps URL.
type URL struct {
	raw string
}

// ParseURL validates s as a URL.
//
// An empty string is not an error: it means the optional field is absent and nil is returned.
func ParseURL(s string) (*URL, error) {
	if s == "" {
		return nil, nil
	}
	if !urlRegex.MatchString(s) {
		return nil, &FormatError{Kind: "URL", Value: s}
	}
	return &URL{raw: s}, nil
}

func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.raw
}
