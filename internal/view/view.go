// Package view wraps html/template with a small cache and the helpers
// the page templates need. Pages are parsed together with layout.html.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prathibhasolutions/v-mobile/internal/pdf"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	// Works whether the binary runs from the repo root or a subdir.
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year":  func() int { return time.Now().Year() },
		"money": func(d decimal.Decimal) string { return pdf.FormatAmount(d) },
	}
}

// Render writes the named page template wrapped in layout.html.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)

	tplCache.RLock()
	tpl, ok := tplCache.m[name]
	tplCache.RUnlock()
	if !ok || os.Getenv("DEV") == "1" {
		var err error
		tpl, err = template.New("layout.html").Funcs(Funcs()).ParseFiles(
			filepath.Join(baseDir, "layout.html"),
			filepath.Join(baseDir, name),
		)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		tplCache.Lock()
		tplCache.m[name] = tpl
		tplCache.Unlock()
	}

	if data == nil {
		data = map[string]any{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tpl.ExecuteTemplate(w, "layout.html", data)
}
