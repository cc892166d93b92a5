package ytdl

import (
	"net/url"
	"regexp"
)

var linkRegexp = regexp.MustCompile(`https?://\S+`)

// ExtractURL pulls the first http(s) link out of a message. Free text
// without a link is not this subsystem's business.
func ExtractURL(text string) (string, bool) {
	link := linkRegexp.FindString(text)
	if link == "" || !IsURL(link) {
		return "", false
	}
	return link, true
}

// IsURL reports whether str parses as an absolute URL with a host.
func IsURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && u.Scheme != "" && u.Host != ""
}
