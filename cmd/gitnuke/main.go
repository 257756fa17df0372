// Command gitnuke scans a directory tree for paths hidden by the
// .gitignore rules in effect at each location, reports their aggregate
// size, and — unless --benchmark is set — offers to delete them. This is
// the external-collaborator layer spec.md §1 deliberately keeps out of
// the core engine (CLI parsing, the deletion prompt, logging policy);
// it is wired here using the teacher's own cobra/pflag dependency,
// previously declared in go.mod but never consumed by a main package.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dl/gitnuke/internal/config"
	"github.com/dl/gitnuke/internal/fsdir"
	"github.com/dl/gitnuke/internal/humanize"
	"github.com/dl/gitnuke/internal/ignore"
	"github.com/dl/gitnuke/internal/prompt"
	"github.com/dl/gitnuke/internal/removal"
	"github.com/dl/gitnuke/internal/telemetry"
	"github.com/dl/gitnuke/internal/walker"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "gitnuke",
		Short:         "Find and remove files hidden by .gitignore rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, cfg)
		},
	}

	bindFlags(root, cfg)

	configArgs := config.LoadConfigArgs()
	root.SetArgs(append(configArgs, args...))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gitnuke:", err)
		return 2
	}
	return exitCode
}

// exitCode lets execute communicate a non-zero-but-not-an-error outcome
// (a startup error) back through cobra's error-free success path, since
// "user aborted" and "nothing to delete" are both documented as exit 0.
var exitCode int

func bindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.Directory, "directory", ".", "directory to scan")
	flags.StringVar(&cfg.Root, "root", "", "upper bound for ancestor .gitignore scan")
	flags.Int64Var(&cfg.MinFileSize, "min-file-size", 0, "ignore roots smaller than this many bytes")
	flags.IntVar(&cfg.NumThreads, "num-threads", 0, "worker count (0 = one per logical CPU, not per physical core)")
	flags.BoolVar(&cfg.Benchmark, "benchmark", false, "report sizes only, skip the deletion prompt")
	flags.BoolVar(&cfg.PrintGlobMatches, "print-glob-matches", false, "print which rule matched each path")
	flags.BoolVar(&cfg.IncludeGlobalIgnore, "include-global-ignore", false, "layer the user's global git ignore file")
	flags.BoolVar(&cfg.PrintErrors, "print-errors", false, "print non-fatal walk errors")
	flags.BoolVar(&cfg.GitnukeFile, "gitnuke-file", true, "also honor .gitnuke files alongside .gitignore")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output regardless of terminal detection")
}

func execute(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	color := !cfg.NoColor && fsdir.IsTerminal(os.Stdout.Fd())
	log := telemetry.New(cmd.ErrOrStderr(), color, cfg.PrintErrors)

	numWorkers := cfg.NumThreads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	opts := walker.Options{
		StartDir:            cfg.Directory,
		Root:                cfg.Root,
		IncludeGlobalIgnore: cfg.IncludeGlobalIgnore,
		IncludeParentScope:  true,
		GitnukeFile:         cfg.GitnukeFile,
		ComputeSizes:        true,
		MinBytes:            cfg.MinFileSize,
		NumWorkers:          numWorkers,
		OnError: func(err error) {
			var compileErr *walker.CompileError
			if errors.As(err, &compileErr) {
				log.CompileError(err)
				return
			}
			log.EntryError(err)
		},
	}
	if cfg.PrintGlobMatches {
		opts.OnGlobMatch = func(path string, _ bool, m ignore.Match) {
			log.GlobMatch(path, m.Kind.String(), m.Origin.File, m.Origin.Pattern)
		}
	}

	roots, err := walker.Walk(opts)
	if err != nil {
		log.StartupError(err)
		exitCode = 1
		return nil
	}

	if len(roots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to delete")
		return nil
	}

	var total int64
	for _, r := range roots {
		total += r.Bytes
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", humanize.Bytes(r.Bytes), r.Path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "total: %s across %d root(s)\n", humanize.Bytes(total), len(roots))

	if cfg.Benchmark {
		return nil
	}

	styles := prompt.NewStyles()
	if !color {
		styles = prompt.NoStyles()
	}
	proceed, err := prompt.Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), styles, len(roots), total)
	if err != nil {
		log.StartupError(err)
		exitCode = 1
		return nil
	}
	if !proceed {
		fmt.Fprintln(cmd.OutOrStdout(), "aborted")
		return nil
	}

	paths := make([]string, len(roots))
	for i, r := range roots {
		paths[i] = r.Path
	}
	results := removal.Remove(paths, func(path string, err error) {
		log.RemovalError(path, err)
	})
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d/%d root(s)\n", removal.Succeeded(results), len(results))
	return nil
}
