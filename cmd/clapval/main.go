// Command clapval loads CLAP plugin bundles and drives them through the
// host-simulator conformance suite, reporting structured pass/fail/skip
// results per plugin per test.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/clapval/clapval/internal/discovery"
	"github.com/clapval/clapval/pkg/applog"
	"github.com/clapval/clapval/pkg/config"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/result"
	"github.com/clapval/clapval/pkg/runner"
	"github.com/clapval/clapval/pkg/testcases"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "run-single":
		err = runSingle(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "clapval: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "clapval:", err)
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  clapval validate <path...> [--in-process] [--json] [--config FILE]
  clapval list [--json] [--config FILE]
  clapval run-single --plugin-path PATH --plugin-id ID --test NAME [--block-size N]`)
}

func runValidate(args []string) error {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	inProcess := fs.BoolP("in-process", "i", false, "run tests within this process instead of isolated children")
	asJSON := fs.BoolP("json", "j", false, "print results as JSON lines instead of human-readable text")
	configPath := fs.String("config", "", "path to an optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("validate requires at least one plugin path")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	testcases.SetBlockSize(cfg.BlockSize)
	logger := applog.Default()
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	var jobs []runner.Job
	libs := make([]*plugin.Library, 0, len(paths))
	defer func() {
		for _, l := range libs {
			l.Close()
		}
	}()

	for _, path := range paths {
		lib, err := plugin.Load(path)
		if err != nil {
			logger.Error("failed to load bundle", "path", path, "error", err)
			continue
		}
		libs = append(libs, lib)
		target := runner.Target{Path: path, Lib: lib}
		for _, desc := range lib.Descriptors() {
			jobs = append(jobs, runner.Job{Target: target, PluginID: desc.ID})
		}
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no plugin could be loaded from the given paths")
	}

	opts := runner.Options{
		InProcess:   *inProcess,
		Timeout:     cfg.TestTimeout,
		Parallelism: cfg.Parallelism,
		BlockSize:   cfg.BlockSize,
		SelfPath:    self,
	}

	results := runner.Matrix(jobs, opts)
	anyFailed := false
	for _, jr := range results {
		for _, r := range jr.Results {
			if r.Status == result.StatusFailed || r.Status == result.StatusCrashed || r.Status == result.StatusTimedOut {
				anyFailed = true
			}
			printResult(r, *asJSON)
		}
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}

func runList(args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	asJSON := fs.BoolP("json", "j", false, "print results as JSON instead of human-readable text")
	configPath := fs.String("config", "", "path to an optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	bundles, err := discovery.New(cfg.ExtraSearchPaths).Discover()
	if err != nil {
		return err
	}

	type entry struct {
		Path    string `json:"path"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Vendor  string `json:"vendor"`
		Version string `json:"version"`
	}
	var entries []entry

	for _, b := range bundles {
		lib, err := plugin.Load(b.Path)
		if err != nil {
			continue
		}
		for _, desc := range lib.Descriptors() {
			entries = append(entries, entry{Path: b.Path, ID: desc.ID, Name: desc.Name, Vendor: desc.Vendor, Version: desc.Version})
		}
		lib.Close()
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(entries)
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\t%s\t(%s)\n", e.ID, e.Name, e.Vendor, e.Version, e.Path)
	}
	return nil
}

func runSingle(args []string) error {
	fs := pflag.NewFlagSet("run-single", pflag.ContinueOnError)
	pluginPath := fs.String("plugin-path", "", "path to the plugin bundle")
	pluginID := fs.String("plugin-id", "", "plugin ID within the bundle to test")
	testName := fs.String("test", "", "name of the test case to run")
	blockSize := fs.Int("block-size", 0, "override the processing block size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pluginPath == "" || *pluginID == "" || *testName == "" {
		return fmt.Errorf("run-single requires --plugin-path, --plugin-id, and --test")
	}
	testcases.SetBlockSize(*blockSize)

	fn, ok := testcases.Lookup(*testName)
	if !ok {
		return fmt.Errorf("unknown test case %q", *testName)
	}

	lib, err := plugin.Load(*pluginPath)
	if err != nil {
		r := result.FromError(*pluginID, *testName, err)
		printResult(r, true)
		return nil
	}
	defer lib.Close()

	r := fn(lib, *pluginID)
	printResult(r, true)
	return nil
}

func printResult(r result.Result, asJSON bool) {
	if asJSON {
		data, err := json.Marshal(r)
		if err != nil {
			fmt.Fprintln(os.Stderr, "clapval: failed to marshal result:", err)
			return
		}
		fmt.Println(string(data))
		return
	}
	if r.Details == "" {
		fmt.Printf("%-40s %-28s %s\n", r.PluginID, r.TestName, r.Status)
	} else {
		fmt.Printf("%-40s %-28s %s: %s\n", r.PluginID, r.TestName, r.Status, r.Details)
	}
}
