// Package contenttype maps file suffixes to the Content-Type values the dev server sends.
package contenttype

import "path"

// Default is returned for any suffix not listed in the table.
const Default = "text/plain; charset=UTF-8"

// byExt is keyed by the suffix including the leading dot.
// Matching is case-sensitive: "logo.PNG" falls back to Default.
var byExt = map[string]string{
	".html":  "text/html; charset=UTF-8",
	".css":   "text/css; charset=UTF-8",
	".js":    "application/javascript; charset=UTF-8",
	".json":  "application/json; charset=UTF-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
}

// ForPath returns the Content-Type for p based on its final suffix.
func ForPath(p string) string {
	if ct, ok := byExt[path.Ext(p)]; ok {
		return ct
	}
	return Default
}
