package scaffold

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// Template IDs, in registry order.
const (
	TmplRequirements = "requirements"
	TmplGitignore    = "gitignore"
	TmplReadme       = "readme"
	TmplMain         = "main"
	TmplCSSKeep      = "css-keep"
	TmplJSKeep       = "js-keep"
	TmplIndex        = "index"
	TmplTestsInit    = "tests-init"
	TmplRunTests     = "run-tests"
)

// TemplateEntry binds one template to its destination inside the project
// root. Render is a pure function of the spec.
type TemplateEntry struct {
	ID     string
	Path   func(spec ProjectSpec) string
	Render func(spec ProjectSpec) (string, error)
}

// Registry is the fixed, ordered template set.
type Registry struct {
	entries []TemplateEntry
	index   map[string]int
}

// DefaultRegistry returns the built-in template set. Entries that create
// directories come before entries whose files live in them.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	return newRegistry(
		textEntry(TmplRequirements, atRoot("requirements.txt"), requirementsBody),
		textEntry(TmplGitignore, atRoot(".gitignore"), gitignoreBody),
		textEntry(TmplReadme, atRoot("README.md"), readmeBody),
		textEntry(TmplMain, inSource("main.py"), mainBody),
		emptyEntry(TmplCSSKeep, inSource("static", "css", ".gitkeep")),
		emptyEntry(TmplJSKeep, inSource("static", "js", ".gitkeep")),
		textEntry(TmplIndex, inSource("static", "index.html"), indexBody),
		emptyEntry(TmplTestsInit, atRoot("tests", "__init__.py")),
		textEntry(TmplRunTests, atRoot("tests", "run_tests.py"), runTestsBody),
	)
})

func newRegistry(entries ...TemplateEntry) *Registry {
	r := &Registry{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		r.index[e.ID] = i
	}
	return r
}

// Entries returns a copy of the registry in write order.
func (r *Registry) Entries() []TemplateEntry {
	out := make([]TemplateEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (TemplateEntry, bool) {
	i, ok := r.index[id]
	if !ok {
		return TemplateEntry{}, false
	}
	return r.entries[i], true
}

// Render renders the template registered under id.
func (r *Registry) Render(id string, spec ProjectSpec) (string, error) {
	e, ok := r.Lookup(id)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTemplate, id)
	}
	return e.Render(spec)
}

// Destination returns the path, relative to the project root, that the
// template registered under id is written to.
func (r *Registry) Destination(id string, spec ProjectSpec) (string, error) {
	e, ok := r.Lookup(id)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTemplate, id)
	}
	return e.Path(spec), nil
}

func atRoot(elem ...string) func(ProjectSpec) string {
	rel := filepath.Join(elem...)
	return func(ProjectSpec) string { return rel }
}

func inSource(elem ...string) func(ProjectSpec) string {
	rel := filepath.Join(elem...)
	return func(spec ProjectSpec) string { return filepath.Join(spec.Slug, rel) }
}

var templateFuncs = template.FuncMap{
	// code wraps s in markdown backticks, which raw string bodies cannot hold.
	"code": func(s string) string { return "`" + s + "`" },
}

// textEntry parses body once. The body's margin is removed before parsing,
// so interpolated values never influence how much whitespace is stripped.
func textEntry(id string, path func(ProjectSpec) string, body string) TemplateEntry {
	tmpl := template.Must(template.New(id).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(Dedent(strings.TrimPrefix(body, "\n"))))

	return TemplateEntry{
		ID:   id,
		Path: path,
		Render: func(spec ProjectSpec) (string, error) {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, spec); err != nil {
				return "", fmt.Errorf("executing template %s: %w", id, err)
			}
			return buf.String(), nil
		},
	}
}

// emptyEntry is a marker file that exists only so git tracks its directory.
func emptyEntry(id string, path func(ProjectSpec) string) TemplateEntry {
	return TemplateEntry{
		ID:     id,
		Path:   path,
		Render: func(ProjectSpec) (string, error) { return "", nil },
	}
}

const requirementsBody = `
	flask
	{{- if .IncludeTests}}
	xmlrunner
	coverage
	{{- end}}
	pynput
`

const gitignoreBody = `
	venv/
	.idea/
	.cache/
	**/test-reports/*
	.coverage
	coverage.xml
	htmlcov
	*.pyc
	*.iml
	*.db
	*.log
`

const readmeBody = `
	# {{.Name}}
	{{.Description}}

	## Setup
	### Requirements
	* Python {{.PythonVersion}}

	### Running
	1. Clone this repository
	1. Run {{code "pip install -r requirements.txt"}} from the root directory of the repository.
		1. This only needs to be run the first time you are starting the application.
	1. Run {{code (printf "cd %s; python main.py" .Slug)}} from the root directory of this repository.
		1. {{.Name}} will now be accessible in your browser of choice at {{code (printf "localhost:%d" .Port)}}.
	{{- if .IncludeTests}}

	### Testing
	1. Run {{code "python tests/run_tests.py"}} from the root directory of this repository.
		1. JUnit-style reports are written to {{code "test-reports/"}} and coverage to {{code "coverage.xml"}}.
	{{- end}}
`

const mainBody = `
	import logging
	import os
	import sqlite3 as sl
	from urllib.request import pathname2url

	from flask import Flask, render_template, request

	app = Flask(__name__, template_folder=os.path.abspath('static'))


	@app.route('/')
	def index():
	    return render_template('index.html')


	def connect_to_database():
	    db_name = '{{.Slug}}.db'
	    try:
	        dburi = 'file:{}?mode=rw'.format(pathname2url(db_name))
	        conn = sl.connect(dburi, uri=True)
	        logging.info('Found existing database.')
	    except sl.OperationalError:
	        # handle missing database case
	        logging.warning('Could not find database - will initialize an empty one!')
	        conn = sl.connect(db_name)
	    return conn


	if __name__ == '__main__':
	    # Setup Logging
	    logging.basicConfig(format='%(levelname)s [%(asctime)s]: %(message)s', level=logging.INFO)
	    logging.info('Starting {{.Name}}...')

	    # Connect to database
	    logging.info('About to connect to database...')
	    connect_to_database()
	    logging.info('Successfully connected to database.')

	    app.run(port={{.Port}}, debug=False, use_reloader=False)
`

const indexBody = `
	<html>
	<head>
		<title>{{.Name}}</title>
	</head>
	<body>
		<h1>{{.Name}}</h1>
	</body>
	</html>
`

const runTestsBody = `
	import os
	import sys
	import unittest

	import coverage
	import xmlrunner

	ROOT_DIR = os.path.dirname(os.path.dirname(os.path.abspath(__file__)))
	SOURCE_DIR = os.path.join(ROOT_DIR, '{{.Slug}}')


	def main():
	    cov = coverage.Coverage(source=[SOURCE_DIR])
	    cov.start()

	    sys.path.insert(0, SOURCE_DIR)
	    suite = unittest.defaultTestLoader.discover(os.path.join(ROOT_DIR, 'tests'))
	    runner = xmlrunner.XMLTestRunner(output=os.path.join(ROOT_DIR, 'test-reports'))
	    result = runner.run(suite)

	    cov.stop()
	    cov.save()
	    cov.xml_report(outfile=os.path.join(ROOT_DIR, 'coverage.xml'))

	    return 0 if result.wasSuccessful() else 1


	if __name__ == '__main__':
	    sys.exit(main())
`
