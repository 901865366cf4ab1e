// Package view renders html/template pages with a shared layout and FuncMap.
package view

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/i18n"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
)

// DateLayout is the human-readable date pattern used on every page and document.
const DateLayout = "Jan 02, 2006"

type themeKey struct{}

// WithTheme returns a new context with the given theme.
func WithTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, themeKey{}, theme)
}

// ThemeFromContext retrieves the theme from context, defaulting to "system".
func ThemeFromContext(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey{}).(string); ok {
		return theme
	}
	return "system"
}

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetManifest     map[string]string
	assetManifestOnce sync.Once

	langResolver = func(r *http.Request) string {
		if lang := i18n.LangFromContext(r.Context()); lang != "" {
			return lang
		}
		return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	}
	themeResolver = func(r *http.Request) string { return ThemeFromContext(r.Context()) }
)

// partials are parsed alongside every page that uses the layout.
var partials = []string{
	"header.html",
	"flash.html",
	"errors-alert.html",
	"stat-card.html",
	"invoice-page.html",
	"icon.html",
}

// layoutBase walks upward from a template path to find the directory that contains layout.html.
// If none is found, it returns the template's own directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		lp := filepath.Join(d, "layout.html")
		if fi, err := os.Stat(lp); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d {
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

// SetLangResolver allows the host app to provide a custom language resolver.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetThemeResolver allows the host app to provide a custom theme resolver.
func SetThemeResolver(f func(*http.Request) string) {
	if f != nil {
		themeResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map including i18n and formatting helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	theme := themeResolver(r)
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"lang":  func() string { return lang },
		"theme": func() string { return theme },
		"year":  func() int { return time.Now().Year() },
		"asset": func(path string) string { return resolveAsset(path) },
		"money": func(amount float64, c models.Currency) string { return c.Format(amount) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(DateLayout)
		},
		// inputDate formats a date for <input type="date">.
		"inputDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"icon": func(name models.Icon) string { return models.ParseIcon(string(name)).SVGPath() },
		"statusLabel": func(s models.InvoiceStatus) string {
			return i18n.T(lang, "status_"+string(s))
		},
		"px": func(v float64) string { return fmt.Sprintf("%.2fpx", v) },
		// imgsrc lets inline logos through; html/template rejects data: URLs otherwise.
		"imgsrc": func(src string) template.URL {
			if strings.HasPrefix(src, "data:image/") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://") {
				return template.URL(src)
			}
			return ""
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// versionedAsset returns /static/<name>?v=<hash> for cache busting.
func versionedAsset(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	b, err := os.ReadFile(filepath.Join("static", rel))
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	return "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
}

// resolveAsset prefers a hashed filename from manifest.json then falls back to query param versioning.
func resolveAsset(rel string) string {
	if os.Getenv("DEV") == "1" {
		parseManifest()
	} else {
		assetManifestOnce.Do(parseManifest)
	}
	if h, ok := assetManifest[rel]; ok {
		return "/static/" + h
	}
	return versionedAsset(rel)
}

func parseManifest() {
	b, err := os.ReadFile(filepath.Join("static", "manifest.json"))
	if err != nil {
		return
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return
	}
	assetManifest = m
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Render parses and executes a single template file with shared funcs.
// name is relative to the templates directory (e.g., "admin/dashboard.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return render(w, r, name, data, true)
}

// Partial renders a template file without the layout, for HTML fragments
// swapped into an existing page.
func Partial(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return render(w, r, name, data, false)
}

func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any, withLayout bool) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.OwnerIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// funcs close over language and theme, so those are part of the key
	key := fmt.Sprintf("%s|%s|%s|%t", name, langResolver(r), themeResolver(r), withLayout)
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	t, err := parse(r, name, withLayout)
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	if t == nil {
		return errors.New("template not cached")
	}
	return t.Execute(w, data)
}

func parse(r *http.Request, name string, withLayout bool) (*template.Template, error) {
	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		candidates := []string{
			filepath.Join("templates", name),
			filepath.Join("../templates", name),
			filepath.Join("../../templates", name),
			filepath.Join("../../../templates", name),
		}
		found := false
		for _, c := range candidates {
			if fi, e2 := os.Stat(c); e2 == nil && !fi.IsDir() {
				mainPath, found = c, true
				break
			}
		}
		if !found {
			return nil, err
		}
	}
	// Align baseDir to the directory that owns layout.html (typically the templates root)
	baseDir = layoutBase(mainPath)

	files := []string{mainPath}
	for _, p := range partials {
		pp := filepath.Join(baseDir, "partials", p)
		if fi, err := os.Stat(pp); err == nil && !fi.IsDir() {
			files = append(files, pp)
		}
	}

	funcMap := Funcs(r)
	content, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, err
	}
	layoutPath := filepath.Join(baseDir, "layout.html")
	// Full documents (print view) skip the layout.
	if withLayout && !bytes.Contains(bytes.ToLower(content), []byte("<!doctype")) {
		if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
			return template.New("layout.html").Funcs(funcMap).ParseFiles(append([]string{layoutPath}, files...)...)
		}
	}
	return template.New(filepath.Base(mainPath)).Funcs(funcMap).ParseFiles(files...)
}
