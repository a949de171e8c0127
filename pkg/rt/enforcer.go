// Copyright 2019 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package rt

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/cockroachdb/sigcheck/pkg/meta"
	"github.com/cockroachdb/sigcheck/pkg/sig/gosig"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
	"gopkg.in/yaml.v3"
)

// Enforcer is the main entrypoint for a signature-checking binary.
// A main package will just configure an instance of Enforcer and call
// its Main() method.
type Enforcer struct {
	// An optional YAML file which defines contract aliases. Relative
	// paths are resolved against Dir.
	Config string
	// Contracts contains providers for the various contract types.
	Contracts meta.Providers
	// Allows the working directory to be overridden.
	Dir string
	// An optional Logger to receive diagnostic messages.
	Logger *log.Logger
	// The name of the binary.
	Name string
	// The package-patterns to enforce contracts upon.
	Packages []string
	// If true, Main() will exit with a non-zero status if any results
	// are reported.
	SetExitStatus bool
	// If true, the test sources for the package will be included.
	Tests bool

	fset   *token.FileSet
	oracle *gosig.Oracle
	pkgs   []*packages.Package

	mu struct {
		sync.Mutex
		results Results
	}
}

// Execute allows an Enforcer to be called programmatically.
func (e *Enforcer) Execute(ctx context.Context) (Results, error) {
	absDir, err := filepath.Abs(e.Dir)
	if err != nil {
		return nil, err
	}
	e.Dir = absDir
	if len(e.Packages) == 0 {
		return nil, errors.New("no packages specified")
	}

	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}

	// Load the source
	e.fset = token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Dir:   e.Dir,
		Fset:  e.fset,
		Mode:  packages.LoadAllSyntax,
		Tests: e.Tests,
	}, e.Packages...)
	if err != nil {
		return nil, err
	}
	e.pkgs = pkgs

	loaded := make([]*types.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Types != nil {
			loaded = append(loaded, pkg.Types)
		}
	}
	e.oracle = gosig.NewOracle(loaded...)

	tgts, err := e.findContracts(ctx)
	if err != nil {
		return nil, err
	}

	// Expand aliases and decode configurations before checking anything.
	reader, work, err := e.bindAll(cfg, tgts)
	if err != nil {
		return nil, err
	}

	err = e.enforceAll(ctx, meta.ValidatingReader{Reader: reader}, work)

	e.mu.Lock()
	defer e.mu.Unlock()
	ret := e.mu.results
	e.mu.results = nil
	sort.Sort(ret)
	return ret, err
}

// Main is called by the main() code.
func (e *Enforcer) Main() {
	if err := e.command().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(0)
}

// command constructs the root cobra command.
func (e *Enforcer) command() *cobra.Command {
	verbose := false
	enforce := &cobra.Command{
		Use:           "enforce [packages]",
		Short:         "Enforce signature contracts declared in the given packages",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sig := make(chan os.Signal, 1)
			defer close(sig)

			signal.Notify(sig, syscall.SIGINT)
			defer signal.Stop(sig)

			go func() {
				if _, open := <-sig; open {
					cmd.Println("Interrupted")
					cancel()
				}
			}()

			e.Packages = args
			if verbose {
				e.Logger = log.New(os.Stdout, "" /* prefix */, 0 /* flags */)
			}
			results, err := e.Execute(ctx)
			for _, result := range results {
				cmd.Println(result.StringRelative(e.Dir))
			}
			if err == nil && e.SetExitStatus && len(results) > 0 {
				err = errors.New("reports generated")
			}
			return err
		},
	}
	enforce.Flags().StringVarP(&e.Config, "config", "c",
		"", "a YAML file which defines contract aliases")
	enforce.Flags().StringVarP(&e.Dir, "dir", "d",
		".", "override the current working directory")
	enforce.Flags().BoolVar(&e.SetExitStatus, "set_exit_status",
		false, "return a non-zero exit code if errors are reported")
	enforce.Flags().BoolVarP(&e.Tests, "tests", "t",
		false, "include test sources in the analysis")
	enforce.Flags().BoolVarP(&verbose, "verbose", "v",
		false, "enable additional diagnostic messages")

	root := &cobra.Command{
		Use: e.Name,
	}
	root.AddCommand(
		enforce,
		&cobra.Command{
			Use:   "contracts",
			Short: "Lists all defined contracts",
			RunE: func(cmd *cobra.Command, _ []string) error {
				names := make([]string, 0, len(e.Contracts))
				for name := range e.Contracts {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					if help := e.Contracts[name].Help; help != "" {
						cmd.Println(help)
					} else {
						cmd.Println("contract:" + name)
					}
					cmd.Println()
				}
				return nil
			},
		})
	return root
}

// bindAll performs alias expansion and constructs the metadata
// objects for every target. It returns the functions to check in
// source order.
func (e *Enforcer) bindAll(cfg *config, tgts targets) (*commentReader, []*types.Func, error) {
	reader := &commentReader{bindings: make(map[*types.Func][]interface{})}
	var work []*types.Func

	for _, tgt := range tgts {
		expanded, err := expand(cfg.Aliases, tgt)
		if err != nil {
			return nil, nil, err
		}
		for _, exp := range expanded {
			var md interface{}
			if exp.node != nil {
				md, err = e.Contracts.Decode(exp.contract, exp.node)
			} else {
				md, err = e.Contracts.Instantiate(exp.contract, exp.config)
			}
			if err != nil {
				return nil, nil, errors.Wrap(err, exp.fset.Position(exp.Pos()).String())
			}
			if reader.bindings[exp.object] == nil {
				work = append(work, exp.object)
			}
			reader.bindings[exp.object] = append(reader.bindings[exp.object], md)
		}
	}
	return reader, work, nil
}

// enforceAll reads the metadata of every function, which invokes the
// bound validators, and records the violations.
func (e *Enforcer) enforceAll(ctx context.Context, reader meta.Reader, work []*types.Func) error {
	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan *types.Func, 1)

	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for {
				select {
				case obj, open := <-ch:
					if !open {
						return nil
					}
					pos := e.fset.Position(obj.Pos())
					e.printf("enforcing %s: %s", pos, obj.FullName())

					if _, err := reader.MethodMetadata(e.oracle.Func(obj)); err != nil {
						e.mu.Lock()
						e.mu.results = append(e.mu.results, &Result{
							Function: obj.FullName(),
							Message:  err.Error(),
							Pos:      pos,
						})
						e.mu.Unlock()
					}

				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

sendLoop:
	for _, w := range work {
		select {
		case ch <- w:
		case <-ctx.Done():
			break sendLoop
		}
	}
	close(ch)

	return g.Wait()
}

// findContracts performs AST-level extraction of the contract
// declarations on functions, methods, and interface methods.
//
// Since we're operating on a per-ast.File basis, we want to operate as
// concurrently as possible. We'll set up a limited number of goroutines
// and feed them (package, file) pairs.
func (e *Enforcer) findContracts(ctx context.Context) (targets, error) {
	// mu protects the variables shared between goroutines.
	mu := struct {
		sync.Mutex
		targets targets
	}{}

	// extract will update mu.targets if the provided comments contain
	// a contract declaration.
	extract := func(pkg *packages.Package, comments []*ast.CommentGroup, ident *ast.Ident) {
		fn, ok := pkg.TypesInfo.ObjectOf(ident).(*types.Func)
		if !ok {
			return
		}
		for _, group := range comments {
			for _, comment := range group.List {
				matches := commentSyntax.FindAllStringSubmatch(comment.Text, -1)
				for _, match := range matches {
					tgt := &target{
						config:   strings.TrimSpace(match[2]),
						contract: match[1],
						fset:     pkg.Fset,
						object:   fn,
						pos:      comment.Pos(),
					}

					e.println("target", tgt)
					mu.Lock()
					mu.targets = append(mu.targets, tgt)
					mu.Unlock()
				}
			}
		}
	}

	process := func(pkg *packages.Package, file *ast.File) {
		// CommentMap associates each node in the file with
		// its surrounding comments.
		comments := ast.NewCommentMap(pkg.Fset, file, file.Comments)

		ast.Inspect(file, func(node ast.Node) bool {
			switch t := node.(type) {
			case *ast.FuncDecl:
				// Top-level function or method declarations, such as
				//   func Foo() { .... }
				//   func (r Receiver) Bar() { ... }
				extract(pkg, comments[t], t.Name)
				// We don't need to descend into function bodies.
				return false

			case *ast.InterfaceType:
				// Methods of an interface type, such as
				//   type I interface { Foo() }
				// surface as fields with a function type.
				if t.Methods == nil {
					return false
				}
				for _, field := range t.Methods.List {
					if _, ok := field.Type.(*ast.FuncType); ok && len(field.Names) == 1 {
						extract(pkg, comments[field], field.Names[0])
					}
				}
				return false

			case *ast.GenDecl:
				// We only need to descend into type declarations.
				return t.Tok == token.TYPE

			default:
				return true
			}
		})
	}

	type work struct {
		pkg  *packages.Package
		file *ast.File
	}
	workCh := make(chan work, 1)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for {
				select {
				case next, open := <-workCh:
					if !open {
						return nil
					}
					process(next.pkg, next.file)
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	var loadErr error
sendLoop:
	for _, pkg := range e.pkgs {
		// See discussion on package.Config type for the naming scheme.
		if e.Tests && !strings.HasSuffix(pkg.ID, ".test]") {
			continue
		}
		if pkg.Errors != nil {
			loadErr = errors.Wrap(pkg.Errors[0], "could not load source due to error(s)")
			break
		}

		for _, file := range pkg.Syntax {
			select {
			case workCh <- work{pkg, file}:
			case <-ctx.Done():
				break sendLoop
			}
		}
	}
	close(workCh)

	// Wait for all the goroutines to exit.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if loadErr != nil {
		return nil, loadErr
	}

	// Produce stable output.
	sort.Sort(mu.targets)
	return mu.targets, nil
}

// loadConfig reads the alias file, if one is configured.
func (e *Enforcer) loadConfig() (*config, error) {
	cfg := &config{}
	if e.Config == "" {
		return cfg, nil
	}
	path := e.Config
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := yaml.NewDecoder(f)
	// Disallow unknown fields to help with typos.
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	for name, exps := range cfg.Aliases {
		if len(exps) == 0 {
			return nil, errors.Errorf("%s: alias %s has no entries", path, name)
		}
		for _, exp := range exps {
			if exp == nil || exp.Contract == "" {
				return nil, errors.Errorf("%s: alias %s has an entry without a contract", path, name)
			}
		}
		e.println("alias", name, len(exps))
	}
	return cfg, nil
}

// printf will emit a diagnostic message via e.Logger, if one is configured.
func (e *Enforcer) printf(format string, args ...interface{}) {
	if l := e.Logger; l != nil {
		l.Printf(format, args...)
	}
}

// println will emit a diagnostic message via e.Logger, if one is configured.
func (e *Enforcer) println(args ...interface{}) {
	if l := e.Logger; l != nil {
		l.Println(args...)
	}
}
