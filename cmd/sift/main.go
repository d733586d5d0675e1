package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/siftlang/sift/internal/bodycache"
	"github.com/siftlang/sift/internal/exparse"
	"github.com/siftlang/sift/internal/jobfile"
	"github.com/siftlang/sift/internal/prog"
	"github.com/siftlang/sift/internal/synth"
	"github.com/siftlang/sift/internal/vm"
)

const (
	HELP = "Usage:\n\tsift <command> [arguments]\n\nThe commands are:\n" +
		"\tsynth - synthesize programs from input/output examples\n" +
		"\teval - execute a single program\n\n" +
		"The synth command:\n" +
		"\tsynth -examples \"[2]->[5] [3]->[10]\" [-max-tokens 8] [-beam 200] [-no-wildcards] [-seed 42]\n" +
		"\tsynth -job job.yml\n\n" +
		"The eval command:\n" +
		"\teval -program \"ARG0 DUP MUL PRINT\" [-inputs 2] [-seed 42]\n"

	MAX_PRINTED_SOLUTIONS = 20
)

func main() {
	_main(os.Args)
}

func _main(args []string) {
	if len(args) == 1 {
		fmt.Println("missing command")
		fmt.Print(HELP)
		return
	}

	switch args[1] {
	case "help":
		fmt.Print(HELP)
	case "synth":
		synthCommand(args[2:])
	case "eval":
		evalCommand(args[2:])
	default:
		fmt.Printf("unknown command %q\n", args[1])
		fmt.Print(HELP)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("run", ulid.Make().String()).
		Logger()
}

func synthCommand(args []string) {
	synthFlags := flag.NewFlagSet("synth", flag.ExitOnError)

	var (
		examplesText string
		jobPath      string
		maxTokens    int
		beam         int
		noWildcards  bool
		seed         int64
		stepBudget   int
		verbose      bool
	)

	synthFlags.StringVar(&examplesText, "examples", "", `examples, e.g. "[2]->[5] [3]->[10]"`)
	synthFlags.StringVar(&jobPath, "job", "", "path of a YAML job file")
	synthFlags.IntVar(&maxTokens, "max-tokens", 12, "program length cutoff")
	synthFlags.IntVar(&beam, "beam", 0, "frontier width, 0 means unbounded")
	synthFlags.BoolVar(&noWildcards, "no-wildcards", false, "disable wildcard-call expansion")
	synthFlags.Int64Var(&seed, "seed", 0, "master seed for reproducible sampling")
	synthFlags.IntVar(&stepBudget, "steps", vm.DEFAULT_MAX_STEPS, "per-run step budget")
	synthFlags.BoolVar(&verbose, "v", false, "verbose logging")

	if err := synthFlags.Parse(args); err != nil {
		fmt.Println(err)
		return
	}
	setFlags := map[string]bool{}
	synthFlags.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	logger := newLogger(verbose)

	config := synth.Config{
		MaxTokens:      maxTokens,
		FrontierWidth:  beam,
		AllowWildcards: !noWildcards,
		MaxSteps:       stepBudget,
		Cache:          bodycache.New(),
	}
	if setFlags["seed"] {
		config.Seed = &seed
	}

	//a job file provides defaults, explicitly passed flags win
	if jobPath != "" {
		job, err := jobfile.Load(jobPath)
		if err != nil {
			fmt.Println(err)
			return
		}
		if examplesText == "" {
			examplesText = strings.Join(job.Examples, " ")
		}
		if !setFlags["max-tokens"] && job.MaxTokens > 0 {
			config.MaxTokens = job.MaxTokens
		}
		if !setFlags["beam"] && job.FrontierWidth > 0 {
			config.FrontierWidth = job.FrontierWidth
		}
		if !setFlags["no-wildcards"] && job.AllowWildcards != nil {
			config.AllowWildcards = *job.AllowWildcards
		}
		if !setFlags["seed"] && job.Seed != nil {
			config.Seed = job.Seed
		}
		if !setFlags["steps"] && job.StepBudget > 0 {
			config.MaxSteps = job.StepBudget
		}
	}

	examples, err := exparse.Parse(examplesText)
	if err != nil {
		fmt.Println(err)
		return
	}

	logger.Info().
		Int("examples", len(examples)).
		Int("maxTokens", config.MaxTokens).
		Int("frontierWidth", config.FrontierWidth).
		Bool("wildcards", config.AllowWildcards).
		Msg("starting search")

	solutions := synth.NewSearcher(logger, config).Search(examples)
	printSolutions(solutions)
}

func printSolutions(solutions []prog.Program) {
	output := termenv.NewOutput(os.Stdout)

	if len(solutions) == 0 {
		fmt.Fprintln(output, "No solutions.")
		return
	}

	fmt.Fprintf(output, "Found %d solution(s):\n", len(solutions))
	for i, solution := range solutions {
		if i >= MAX_PRINTED_SOLUTIONS {
			fmt.Fprintf(output, "... and %d more\n", len(solutions)-MAX_PRINTED_SOLUTIONS)
			break
		}
		styled := output.String(solution.String()).Foreground(output.Color("2"))
		fmt.Fprintf(output, "[%d] %s\n", i+1, styled)
	}
}

func evalCommand(args []string) {
	evalFlags := flag.NewFlagSet("eval", flag.ExitOnError)

	var (
		programText string
		inputsText  string
		maxSteps    int
		seed        int64
	)

	evalFlags.StringVar(&programText, "program", "", `program text, e.g. "ARG0 DUP MUL PRINT"`)
	evalFlags.StringVar(&inputsText, "inputs", "", "comma-separated integer inputs")
	evalFlags.IntVar(&maxSteps, "steps", vm.DEFAULT_MAX_STEPS, "step budget")
	evalFlags.Int64Var(&seed, "seed", 0, "seed for wildcard body sampling")

	if err := evalFlags.Parse(args); err != nil {
		fmt.Println(err)
		return
	}
	if programText == "" {
		fmt.Println("missing -program")
		return
	}

	program, err := prog.Parse(programText)
	if err != nil {
		fmt.Println(err)
		return
	}

	inputs, err := parseInputs(inputsText)
	if err != nil {
		fmt.Println(err)
		return
	}

	config := vm.Config{Cache: bodycache.New()}
	seedSet := false
	evalFlags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if seedSet {
		config.Rand = newSeededRand(seed)
	}

	machine := vm.NewMachine(config)
	values, err := machine.Run(program, inputs, maxSteps)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("Output: [%s]\n", joinValues(values))

	library := machine.Library()
	if len(library) > 0 {
		fmt.Println("Library bindings:")
		names := maps.Keys(library)
		slices.Sort(names)
		for _, name := range names {
			fmt.Printf("  %s -> %s\n", name, library[name])
		}
	}
}

func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func parseInputs(text string) ([]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var inputs []int64
	for _, part := range strings.Split(text, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input %q is not an integer", part)
		}
		inputs = append(inputs, n)
	}
	return inputs, nil
}

func joinValues(values []vm.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
