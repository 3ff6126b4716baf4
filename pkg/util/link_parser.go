package util

import (
	"net/url"
	"regexp"
	"strings"
)

// validVideoLink is the allow-list for entry video attachments: YouTube
// (full and short form) and Google Drive shares only.
// validVideoLink 视频链接白名单：仅 YouTube 与 Google Drive
var validVideoLink = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be|drive\.google\.com).+$`)

// IsValidVideoLink reports whether link is on the video host allow-list.
func IsValidVideoLink(link string) bool {
	return validVideoLink.MatchString(link)
}

// VideoEmbedID extracts the provider id used by the render path to build
// an embed URL. Returns kind ("youtube" or "gdrive") and the id, or
// ok=false when no embeddable id can be parsed. Links that validate but do
// not parse are rendered as plain external links by the caller.
func VideoEmbedID(link string) (kind string, id string, ok bool) {
	switch {
	case strings.Contains(link, "youtube.com/watch"):
		u, err := url.Parse(link)
		if err != nil {
			return "", "", false
		}
		v := u.Query().Get("v")
		if v == "" {
			return "", "", false
		}
		return "youtube", v, true

	case strings.Contains(link, "youtu.be/"):
		rest := strings.SplitN(link, "youtu.be/", 2)[1]
		rest = strings.SplitN(rest, "?", 2)[0]
		rest = strings.Trim(rest, "/")
		if rest == "" {
			return "", "", false
		}
		return "youtube", rest, true

	case strings.Contains(link, "drive.google.com") && strings.Contains(link, "/file/d/"):
		rest := strings.SplitN(link, "/file/d/", 2)[1]
		rest = strings.SplitN(rest, "/", 2)[0]
		if rest == "" {
			return "", "", false
		}
		return "gdrive", rest, true
	}
	return "", "", false
}

// VideoEmbedURL builds the iframe-ready URL for a validated video link.
// Empty string means the link has no embeddable form.
func VideoEmbedURL(link string) string {
	kind, id, ok := VideoEmbedID(link)
	if !ok {
		return ""
	}
	switch kind {
	case "youtube":
		return "https://www.youtube.com/embed/" + id
	case "gdrive":
		return "https://drive.google.com/file/d/" + id + "/preview"
	}
	return ""
}
