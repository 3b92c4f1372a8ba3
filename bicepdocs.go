// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bicepdocs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/bicepdocs/assets"
	"github.com/Azure/bicepdocs/internal/doc"
	"github.com/Azure/bicepdocs/internal/document"
	"github.com/Azure/bicepdocs/internal/environment"
	"github.com/Azure/bicepdocs/internal/links"
	"github.com/Azure/bicepdocs/internal/processor"
	"github.com/Azure/bicepdocs/internal/tools/checker"
	"github.com/Azure/bicepdocs/internal/tools/checks"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallelism = 10 // default number of examples compiled concurrently
)

// DocGen generates README documentation for one template directory.
// Do not create this directly, use NewDocGen instead.
type DocGen struct {
	Options *DocGenOptions

	dir  string
	fsys fs.FS
	proc *processor.Client
	log  *slog.Logger
}

// DocGenOptions are options for a DocGen.
// Zero values select sensible defaults.
type DocGenOptions struct {
	// Parallelism bounds concurrent example compilation.
	Parallelism int

	// Logger receives progress and soft-failure notices.
	Logger *slog.Logger

	// Compiler builds bicep sources. Nil disables compilation; the
	// generator then requires pre-compiled JSON counterparts.
	Compiler Compiler

	// HTTPClient is used for link probing and notice retrieval.
	HTTPClient *http.Client

	// ModuleSource is the module path rendered in usage examples.
	ModuleSource string

	// DocsBaseURL overrides the resource type reference base URL.
	DocsBaseURL string

	// NoticeURL names a remote data collection notice endpoint. Empty
	// falls back to the BICEPDOCS_NOTICE_URL environment variable, then
	// to the embedded notice text.
	NoticeURL string

	// DisableLinkProbing renders the most specific documentation link for
	// each resource type without checking reachability.
	DisableLinkProbing bool
}

// NewDocGen creates a DocGen over a local template directory.
func NewDocGen(dir string, opts *DocGenOptions) *DocGen {
	if opts == nil {
		opts = &DocGenOptions{}
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsys := os.DirFS(dir)
	return &DocGen{
		Options: opts,
		dir:     dir,
		fsys:    fsys,
		proc:    processor.NewClient(fsys),
		log:     log,
	}
}

// Template loads the compiled template model of the directory, compiling
// the bicep source first when no pre-compiled template exists.
func (d *DocGen) Template(ctx context.Context) (*assets.TemplateModel, error) {
	m, err := d.proc.Template()
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, processor.ErrTemplateNotFound) || d.Options.Compiler == nil {
		return nil, err
	}

	src := filepath.Join(d.dir, processor.TemplateSourceFileName)
	d.log.Debug("no compiled template found, compiling source", "path", src)

	data, err := d.Options.Compiler.Compile(ctx, src)
	if err != nil {
		return nil, err
	}
	return assets.NewTemplateModelFromJSON(data)
}

// Generate builds the full README for the template directory, merging the
// generated sections into the supplied existing README contents. A nil
// sections filter regenerates everything.
//
// Validation failures abort generation and name every offending parameter.
func (d *DocGen) Generate(ctx context.Context, readme []byte, sections []string) (*document.Document, error) {
	model, err := d.Template(ctx)
	if err != nil {
		return nil, err
	}

	v := checker.NewValidator(d.log,
		checker.NewValidatorCheck("parameter categories", func() error {
			return checks.CheckParameterCategories(model)
		}),
	)
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("template validation failed: %w", err)
	}

	examples, err := d.examples(ctx)
	if err != nil {
		return nil, err
	}

	noticeText, noticeUnavailable := d.notice(ctx)

	var resolver doc.LinkResolver
	if !d.Options.DisableLinkProbing {
		resolver = links.NewResolver(d.Options.HTTPClient, d.log)
	}

	g := doc.NewGenerator(model, &doc.Config{
		Examples:          examples,
		Links:             resolver,
		Logger:            d.log,
		ModuleSource:      d.Options.ModuleSource,
		DocsBaseURL:       d.Options.DocsBaseURL,
		NoticeText:        noticeText,
		NoticeUnavailable: noticeUnavailable,
	})
	return g.Render(ctx, document.Parse(readme), sections)
}

// examples discovers and loads the usage examples of the template,
// compiling bicep sources concurrently.
func (d *DocGen) examples(ctx context.Context) ([]doc.Example, error) {
	paths, err := d.proc.ExamplePaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]doc.Example, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.Options.Parallelism)
	for i, p := range paths {
		eg.Go(func() error {
			dep, err := d.example(ctx, p)
			if err != nil {
				return fmt.Errorf("example %s: %w", p, err)
			}
			results[i] = doc.Example{Path: p, Deployment: dep}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// example loads a single usage example. Pre-compiled documents are read
// directly, bicep sources are compiled. Without a compiler a source falls
// back to its pre-compiled counterpart.
func (d *DocGen) example(ctx context.Context, p string) (*assets.ExampleDeployment, error) {
	if path.Ext(p) == ".json" {
		return d.proc.Example(p)
	}

	if d.Options.Compiler == nil {
		compiled := strings.TrimSuffix(p, ".bicep") + ".json"
		if _, err := fs.Stat(d.fsys, compiled); err == nil {
			d.log.Debug("no compiler configured, using pre-compiled example", "path", compiled)
			return d.proc.Example(compiled)
		}
		return nil, errors.New("no compiler configured and no pre-compiled counterpart found")
	}

	data, err := d.Options.Compiler.Compile(ctx, filepath.Join(d.dir, filepath.FromSlash(p)))
	if err != nil {
		return nil, err
	}
	return assets.NewExampleDeploymentFromJSON(data)
}

// notice returns the data collection notice text. A configured remote
// endpoint is fetched best-effort: when it cannot be retrieved the existing
// README section is left untouched rather than overwritten with stale text.
func (d *DocGen) notice(ctx context.Context) (string, bool) {
	url := d.Options.NoticeURL
	if url == "" {
		url = environment.NoticeURL()
	}
	if url == "" {
		return "", false
	}

	client := d.Options.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.log.Warn("building notice request failed", "url", url, "error", err)
		return "", true
	}

	resp, err := client.Do(req)
	if err != nil {
		d.log.Warn("fetching data collection notice failed", "url", url, "error", err)
		return "", true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.log.Warn("fetching data collection notice failed", "url", url, "status", resp.StatusCode)
		return "", true
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		d.log.Warn("reading data collection notice failed", "url", url, "error", err)
		return "", true
	}
	return strings.TrimSpace(string(body)), false
}
