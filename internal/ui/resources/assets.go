// Package resources serves the dashboard stylesheet and other static assets.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Stylesheet is the dashboard stylesheet, relative to the static root.
const Stylesheet = "meshx.css"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
