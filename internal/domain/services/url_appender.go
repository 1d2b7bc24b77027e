package services

import (
	"net/url"
	"strings"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/services"
)

// urlAppender implements URLAppender by merging the key into the query string
type urlAppender struct {
	param string
}

// NewURLAppender creates an appender that writes the key to the "k" parameter
func NewURLAppender() services.URLAppender {
	return &urlAppender{param: entities.LicenseKeyParam}
}

// queryParam is one name/value pair of a query string
type queryParam struct {
	name  string
	value string
}

// Append sets the license key parameter on rawURL, keeping every other
// parameter and the raw path as they were
func (a *urlAppender) Append(rawURL, key string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &entities.MalformedURLError{URL: rawURL, Reason: "cannot parse", Err: err}
	}
	if u.Scheme == "" {
		return "", &entities.MalformedURLError{URL: rawURL, Reason: "missing scheme"}
	}
	if u.Host == "" {
		return "", &entities.MalformedURLError{URL: rawURL, Reason: "missing host"}
	}

	params := setParam(parseQuery(u.RawQuery), a.param, key)

	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	if u.User != nil {
		b.WriteString(u.User.String())
		b.WriteByte('@')
	}
	b.WriteString(u.Host)
	b.WriteString(rawPath(rawURL))
	b.WriteByte('?')
	b.WriteString(encodeQuery(params))
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.EscapedFragment())
	}
	return b.String(), nil
}

// parseQuery splits a raw query into ordered pairs. A repeated name keeps
// the position of its first occurrence and the value of its last.
func parseQuery(raw string) []queryParam {
	var params []queryParam
	index := make(map[string]int)

	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		name = unescape(name)
		value = unescape(value)
		if name == "" {
			continue
		}

		if i, seen := index[name]; seen {
			params[i].value = value
			continue
		}
		index[name] = len(params)
		params = append(params, queryParam{name: name, value: value})
	}
	return params
}

// unescape decodes a query component, keeping it verbatim if it is not valid escaping
func unescape(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}

func setParam(params []queryParam, name, value string) []queryParam {
	for i := range params {
		if params[i].name == name {
			params[i].value = value
			return params
		}
	}
	return append(params, queryParam{name: name, value: value})
}

func encodeQuery(params []queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.name)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

// rawPath returns the path exactly as written in rawURL, without decoding it
func rawPath(rawURL string) string {
	s, _, _ := strings.Cut(rawURL, "#")
	s, _, _ = strings.Cut(s, "?")

	_, rest, found := strings.Cut(s, "://")
	if !found {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return ""
}
