package iotext

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/soweego-go/soweego/pkg/model"
)

// urlValidateRe is a Go port of the Django URLValidator regex: scheme,
// optional userinfo, IPv4/IPv6/hostname-or-domain, optional port, path.
var urlValidateRe = regexp.MustCompile(
	`(?i)^(?:[a-z][a-z0-9+.-]*://)?` +
		`(?:\S+(?::\S*)?@)?` +
		`(?:` +
		`(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(?:\.(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}` +
		`|` +
		`\[[0-9a-f:.]+\]` +
		`|` +
		`(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}` +
		`|localhost` +
		`)` +
		`(?::\d{2,5})?` +
		`(?:[/?#]\S*)?$`,
)

var topLevelDomains = map[string]struct{}{
	"com": {}, "org": {}, "net": {}, "info": {}, "fm": {},
}

var domainPrefixes = map[string]struct{}{
	"www": {}, "m": {}, "mobile": {},
}

// wikiProjects lists netloc substrings that identify a Wikimedia project
// link, used by IsWikiLink.
var wikiProjects = []string{
	"wikipedia", "wikibooks", "wiktionary", "wikiquote", "commons.wikimedia",
	"wikisource", "wikiversity", "wikidata", "mediawiki", "wikivoyage",
	"meta.wikimedia",
}

// Clean trims surrounding whitespace from a raw URL string.
func Clean(raw string) string {
	return strings.TrimSpace(raw)
}

// ValidateURL checks raw against the Django-derived URL pattern, adding a
// "https://" scheme when one is missing, and returns the normalized form.
// It returns false when the string cannot be made into a valid URL.
func ValidateURL(raw string) (string, bool) {
	candidate := Clean(raw)
	if candidate == "" {
		return "", false
	}
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	if !urlValidateRe.MatchString(candidate) {
		return "", false
	}
	return candidate, true
}

// resolveCache memoizes ResolveURL results the way the original
// implementation's lru_cache did, since resolution is a network call and
// the same URL is frequently looked up multiple times within one run.
var resolveCache sync.Map // map[string]resolveResult

// ResolveStatus classifies what happened when a URL was probed.
type ResolveStatus string

const (
	ResolveAlive        ResolveStatus = "alive"
	ResolveDead         ResolveStatus = "dead"
	ResolveTimeout      ResolveStatus = "timeout"
	ResolveRedirectLoop ResolveStatus = "redirect_loop"
	ResolveError        ResolveStatus = "error"
)

type resolveResult struct {
	status ResolveStatus
	err    error
}

// ResolveURL issues a GET probe against a URL with a browser User-Agent,
// retrying once without TLS verification on a certificate error, and
// classifies the outcome as alive, dead (non-2xx/3xx status), a request
// timeout, a redirect loop, or some other transport error. Results are
// memoized per process so repeated lookups of the same URL do not re-hit
// the network.
func ResolveURL(ctx context.Context, client *http.Client, raw string) (ResolveStatus, error) {
	if cached, ok := resolveCache.Load(raw); ok {
		r := cached.(resolveResult)
		return r.status, r.err
	}

	httpStatus, err := doResolve(ctx, client, raw, false)
	if err != nil && isCertificateError(err) {
		httpStatus, err = doResolve(ctx, client, raw, true)
	}

	status := classifyResolve(httpStatus, err)
	resolveCache.Store(raw, resolveResult{status: status, err: err})
	return status, err
}

// classifyResolve turns a raw HTTP status/error pair into a ResolveStatus.
func classifyResolve(httpStatus int, err error) ResolveStatus {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return ResolveTimeout
		}
		if strings.Contains(err.Error(), "stopped after") && strings.Contains(err.Error(), "redirect") {
			return ResolveRedirectLoop
		}
		return ResolveError
	}
	if httpStatus >= 200 && httpStatus < 400 {
		return ResolveAlive
	}
	return ResolveDead
}

func doResolve(ctx context.Context, client *http.Client, raw string, skipVerify bool) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (compatible; soweego-linker/1.0; +https://www.wikidata.org/wiki/Wikidata:Soweego)")

	c := client
	if skipVerify {
		c = insecureClient(client)
	}
	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func isCertificateError(err error) bool {
	return strings.Contains(err.Error(), "certificate") || strings.Contains(err.Error(), "x509")
}

// insecureClient is invoked only as a last-resort retry after a TLS
// certificate error, mirroring the original implementation's single
// verify=False retry.
func insecureClient(base *http.Client) *http.Client {
	clone := *base
	clone.Timeout = 15 * time.Second
	return &clone
}

// TokenizeURL splits a URL into domain and path/query tokens, dropping
// known top-level domains and subdomain prefixes from the domain part.
func TokenizeURL(raw string) map[string]struct{} {
	tokens := make(map[string]struct{})
	parsed, err := url.Parse(raw)
	if err != nil {
		return tokens
	}

	for _, part := range splitWordRe.Split(strings.ToLower(parsed.Hostname()), -1) {
		if part == "" {
			continue
		}
		if _, isTLD := topLevelDomains[part]; isTLD {
			continue
		}
		if _, isPrefix := domainPrefixes[part]; isPrefix {
			continue
		}
		tokens[part] = struct{}{}
	}

	stop := URLStopwords()
	path, _ := url.QueryUnescape(parsed.Path)
	for _, part := range splitWordRe.Split(strings.ToLower(path), -1) {
		if len(part) <= 1 {
			continue
		}
		if _, isStop := stop[part]; isStop {
			continue
		}
		tokens[part] = struct{}{}
	}

	for _, part := range splitWordRe.Split(strings.ToLower(parsed.RawQuery), -1) {
		if len(part) <= 1 {
			continue
		}
		if _, isStop := stop[part]; isStop {
			continue
		}
		tokens[part] = struct{}{}
	}

	return tokens
}

// tidyURL strips a trailing slash and forces https, matching the
// normalization ExtractIDFromURL applies before matching a formatter.
func tidyURL(raw string) string {
	tidy := strings.TrimSuffix(raw, "/")
	if strings.HasPrefix(tidy, "http://") {
		tidy = "https://" + strings.TrimPrefix(tidy, "http://")
	}
	return tidy
}

// ExtractIDFromURL tidies raw (trailing-slash/scheme normalization) and
// tries every formatter in reg until one yields a validated identifier.
func ExtractIDFromURL(reg *model.FormatterRegistry, raw string) (id string, pid model.PropertyID, ok bool) {
	tidy := tidyURL(raw)
	if id, pid, ok := reg.ExtractID(tidy); ok {
		return id, pid, true
	}
	return reg.ExtractID(raw)
}

// IsWikiLink reports whether raw's host belongs to a Wikimedia project.
func IsWikiLink(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, project := range wikiProjects {
		if strings.Contains(host, project) {
			return true
		}
	}
	return false
}
