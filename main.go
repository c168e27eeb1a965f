// main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"cronohash/crono"
)

const minInputLength = 8

func main() {
	table := crono.NewPrimeTable(uint64(time.Now().UnixNano()))
	code := run(os.Args[1:], table, os.Stdin, os.Stdout, os.Stderr)
	klog.Flush()
	os.Exit(code)
}

// run executes one command-line invocation and returns the exit code.
func run(args []string, table *crono.PrimeTable, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig()
	if err != nil {
		klog.Errorf("Configuration error: %v", err)
		return 1
	}

	fs := flag.NewFlagSet("cronohash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)
	// Logs go to the given writer unless the klog flags say otherwise.
	klog.SetOutput(stderr)
	for name, value := range map[string]string{
		"logtostderr":     "false",
		"one_output":      "true",
		"stderrthreshold": "FATAL",
	} {
		_ = fs.Set(name, value)
	}
	in := fs.String("i", cfg.Input, "Input string to hash")
	dur := fs.Float64("d", cfg.BindingMs, "Temporal binding duration in milliseconds (0 disables binding)")
	modeName := fs.String("m", cfg.Mode, "Mode: FAST, BALANCED, SECURE or ENTROPIC")
	bits := fs.Int("b", cfg.BitStrength, "Bit strength: 128, 256, 512, 1024 or 2048")
	chain := fs.Bool("chain", false, "Print the system chain id and exit")
	bench := fs.Int("bench", 0, "Benchmark every mode and bit strength with N iterations and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: cronohash [-i input_string] [-d binding_duration_ms] [-m mode] [-b bit_strength]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Invalid parameter: %s\n", fs.Arg(0))
		fs.Usage()
		return 1
	}

	hasher := crono.NewHasher(table,
		crono.WithKEMScheme(cfg.KEMScheme),
		crono.WithWorkers(cfg.Workers),
	)
	klog.V(1).Infof("Prime table seed %#x", hasher.Table().Seed())

	if *chain {
		fmt.Fprintf(stdout, "Chain ID: %s\n", crono.ChainID(hasher.Sampler()))
		return 0
	}
	if *bench > 0 {
		results := crono.BenchmarkHasher(hasher, []byte(*in), *bench)
		crono.PrintBenchmarkResults(stdout, results)
		return 0
	}

	var req crono.Request
	if len(args) == 0 {
		req, err = interactive(cfg, stdin, stdout)
		if err != nil {
			klog.Errorf("Interactive input failed: %v", err)
			return 1
		}
	} else {
		req = requestFromFlags(*in, *dur, *modeName, *bits)
	}

	if len(req.Input) < minInputLength {
		req.Input = []byte(crono.SecureString(hasher.Sampler(), nil, minInputLength))
		fmt.Fprintf(stdout, "Input too short. Generated secure input: %s\n", req.Input)
	}

	meta := hasher.HashWithMetadata(req)
	fmt.Fprintf(stdout, "%d-Bit Hash: %s\n", req.BitStrength, meta.Hash)
	fmt.Fprintf(stdout, "Metadata: %s\n", meta)
	return 0
}

func requestFromFlags(input string, ms float64, modeName string, bits int) crono.Request {
	mode, ok := crono.ParseMode(modeName)
	if !ok {
		klog.Warningf("Unknown mode %q. Using %s.", modeName, mode)
	}
	strength, ok := crono.NormalizeBitStrength(bits)
	if !ok {
		klog.Warningf("Invalid bit strength %d. Using %d.", bits, strength)
	}
	return crono.Request{
		Input:       []byte(input),
		Mode:        mode,
		BitStrength: strength,
		Binding:     crono.DurationFromMillis(ms),
	}
}

// interactive prompts on a terminal screen when stdin is the process
// terminal, and line by line otherwise.
func interactive(cfg Config, stdin io.Reader, stdout io.Writer) (crono.Request, error) {
	fmt.Fprintln(stdout, "CronoHash v1.0")

	var p prompter = newLinePrompter(stdin, stdout)
	if f, ok := stdin.(*os.File); ok && f == os.Stdin {
		if s, err := newScreen(); err == nil {
			if err := s.Init(); err == nil {
				defer s.Fini()
				p = &screenPrompter{s: s}
			} else {
				klog.V(1).Infof("terminal screen unavailable, using line prompts: %v", err)
			}
		}
	}

	input, ms, mode, bits, err := collect(p, cfg)
	if err != nil {
		return crono.Request{}, errors.Wrap(err, "collect parameters")
	}
	return crono.Request{
		Input:       []byte(input),
		Mode:        mode,
		BitStrength: bits,
		Binding:     crono.DurationFromMillis(ms),
	}, nil
}
