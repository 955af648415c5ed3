package captcha

import (
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/cdproto/network"
)

// youtubeDomainSuffixes filters the exported cookie jar down to what yt-dlp
// needs for YouTube requests.
var youtubeDomainSuffixes = []string{"youtube.com", "google.com"}

func isYouTubeCookie(domain string) bool {
	d := strings.TrimPrefix(strings.ToLower(domain), ".")
	for _, suffix := range youtubeDomainSuffixes {
		if d == suffix || strings.HasSuffix(d, "."+suffix) {
			return true
		}
	}
	return false
}

// writeNetscapeCookieFile writes cookies in the Netscape format yt-dlp
// consumes: a header line, then one cookie per line with seven tab-separated
// fields (domain, include-subdomains flag, path, secure flag, expiry, name,
// value).
func writeNetscapeCookieFile(path string, cookies []*network.Cookie) (int, error) {
	var sb strings.Builder
	sb.WriteString("# Netscape HTTP Cookie File\n")
	sb.WriteString("# Exported after interactive challenge recovery\n\n")

	written := 0
	for _, c := range cookies {
		if !isYouTubeCookie(c.Domain) {
			continue
		}
		flag := "FALSE"
		if strings.HasPrefix(c.Domain, ".") {
			flag = "TRUE"
		}
		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}
		expires := int64(0)
		if c.Expires > 0 {
			expires = int64(c.Expires)
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Domain, flag, c.Path, secure, expires, c.Name, c.Value)
		written++
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return 0, err
	}
	return written, nil
}
