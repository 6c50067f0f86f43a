package templating

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"

	"github.com/kerbinside/gapgen/pkg/logger"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Engine handles template loading, caching, and rendering
type Engine struct {
	fsys          fs.FS
	templateCache map[string]*template.Template
	cacheMutex    sync.RWMutex
	logger        *logger.Logger
}

// NewEngine creates a new template engine reading templates from fsys
func NewEngine(fsys fs.FS, logger *logger.Logger) *Engine {
	return &Engine{
		fsys:          fsys,
		templateCache: make(map[string]*template.Template),
		logger:        logger.Named("template-engine"),
	}
}

// NewDefaultEngine creates a template engine over the built-in templates
func NewDefaultEngine(logger *logger.Logger) (*Engine, error) {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in templates: %w", err)
	}
	return NewEngine(sub, logger), nil
}

// RenderTemplate renders the named template with data
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return "", fmt.Errorf("failed to get template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	// Template files end with a newline that is not part of the text
	rendered := strings.TrimRight(buf.String(), "\n")
	e.logger.Debug("Template rendered",
		logger.String("template", name),
		logger.Int("rendered_length", len(rendered)))

	return rendered, nil
}

// getTemplate retrieves a template from cache or loads it
func (e *Engine) getTemplate(name string) (*template.Template, error) {
	e.cacheMutex.RLock()
	if tmpl, exists := e.templateCache[name]; exists {
		e.cacheMutex.RUnlock()
		return tmpl, nil
	}
	e.cacheMutex.RUnlock()

	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	if tmpl, exists := e.templateCache[name]; exists {
		return tmpl, nil
	}

	tmpl, err := e.loadTemplate(name)
	if err != nil {
		return nil, err
	}

	e.templateCache[name] = tmpl
	e.logger.Debug("Template loaded and cached",
		logger.String("template", name))

	return tmpl, nil
}

// loadTemplate parses a template file with the text helpers available
func (e *Engine) loadTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file '%s': %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file '%s': %w", name, err)
	}

	return tmpl, nil
}

// ClearCache clears the template cache
func (e *Engine) ClearCache() {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	templateCount := len(e.templateCache)
	e.templateCache = make(map[string]*template.Template)

	e.logger.Debug("Template cache cleared",
		logger.Int("cleared_count", templateCount))
}

// CachedTemplates returns the number of parsed templates held in the cache
func (e *Engine) CachedTemplates() int {
	e.cacheMutex.RLock()
	defer e.cacheMutex.RUnlock()
	return len(e.templateCache)
}
