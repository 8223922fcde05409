// Package mediaurl validates and normalizes video page URLs. Validation is a
// scope boundary: the downloader is never invoked for a URL that does not
// match the per-platform allow-list below.
package mediaurl

import (
	"net/url"
	"regexp"
	"strings"
)

// Allow-listed path shapes, anchored at the start of the URL. Matching is
// case-insensitive against the whole URL.
var bilibiliPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?bilibili\.com/video/[a-z0-9]+`),
	regexp.MustCompile(`^https?://(?:www\.)?bilibili\.com/bangumi/play/[a-z0-9]+`),
	regexp.MustCompile(`^https?://(?:www\.)?bilibili\.com/cheese/play/[a-z0-9]+`),
}

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?v=[a-z0-9_-]+`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/embed/[a-z0-9_-]+`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/v/[a-z0-9_-]+`),
	regexp.MustCompile(`^https?://youtu\.be/[a-z0-9_-]+`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/shorts/[a-z0-9_-]+`),
	regexp.MustCompile(`^https?://(?:m\.)?youtube\.com/watch\?v=[a-z0-9_-]+`),
}

// Tracking query parameters stripped by Normalize, per platform. Content
// parameters (v, p, t, ...) are always preserved.
var bilibiliTrackingParams = []string{
	"spm_id_from", "vd_source", "unique_k", "spm_id", "from_spmid", "from",
}

var youtubeTrackingParams = []string{
	"feature", "utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
}

// Validate reports whether rawURL matches one of the supported platforms'
// allow-listed path shapes. Unknown hosts and unrecognized paths on known
// hosts both fail.
func Validate(rawURL string) bool {
	candidate := strings.ToLower(strings.TrimSpace(rawURL))

	for _, p := range bilibiliPatterns {
		if p.MatchString(candidate) {
			return true
		}
	}
	for _, p := range youtubePatterns {
		if p.MatchString(candidate) {
			return true
		}
	}
	return false
}

// Normalize strips the platform's tracking query parameters while keeping
// scheme, host, path, fragment and every other query parameter intact. URLs
// on unknown hosts (and anything that fails to parse) are returned unchanged.
func Normalize(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	host := strings.ToLower(parsed.Hostname())
	var tracking []string
	switch {
	case strings.HasSuffix(host, "bilibili.com"):
		tracking = bilibiliTrackingParams
	case strings.HasSuffix(host, "youtube.com"), host == "youtu.be":
		tracking = youtubeTrackingParams
	default:
		return rawURL
	}

	query := parsed.Query()
	for _, key := range tracking {
		query.Del(key)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
