package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"

	"alien/internal/regexlib"
)

type options struct {
	pattern   string
	minimize  bool
	format    string
	graph     string
	outFile   string
	png       bool
	wordsFile string
	words     []string
}

var errUsage = errors.New("usage")

func main() {
	var o options
	flag.StringVar(&o.pattern, "re", "", "pattern (required)")
	flag.BoolVar(&o.minimize, "min", false, "minimize the DFA")
	flag.StringVar(&o.format, "format", getEnv("ALIEN_FORMAT", "rules"), "output format: rules|dot|yaml|none")
	flag.StringVar(&o.graph, "graph", "dfa", "automaton to print: dfa|rawdfa|nfa")
	flag.StringVar(&o.outFile, "o", "-", "output file, - for stdout")
	flag.BoolVar(&o.png, "png", false, "render PNG via dot -Tpng into -o")
	flag.StringVar(&o.wordsFile, "words", "", "file with one word per line to run")
	flag.Parse()
	o.words = flag.Args()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(getEnv("ALIEN_LOG_LEVEL", "info")),
	}))
	slog.SetDefault(logger)

	if err := run(o, os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "usage: alien -re <pattern> [-min] [-format rules|dot|yaml|none] [-graph dfa|rawdfa|nfa] [-o file] [-words file] [word...]")
			flag.PrintDefaults()
			os.Exit(2)
		}
		logger.Error("alien failed", "error", err)
		os.Exit(1)
	}
}

func run(o options, stdout io.Writer, logger *slog.Logger) error {
	if o.pattern == "" {
		return errUsage
	}
	opts := []regexlib.Option{regexlib.WithLogger(logger)}
	if o.minimize {
		opts = append(opts, regexlib.WithMinimize())
	}
	re, err := regexlib.Compile(o.pattern, opts...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render(&buf, re, o.graph, o.format); err != nil {
		return err
	}
	if err := writeOutput(o, stdout, buf.Bytes(), logger); err != nil {
		return err
	}

	words := o.words
	if o.wordsFile != "" {
		more, err := readWords(o.wordsFile)
		if err != nil {
			return err
		}
		words = append(words, more...)
	}
	for _, w := range words {
		state, ok, err := re.DFA().Run(w)
		if err != nil {
			return fmt.Errorf("run %q: %w", w, err)
		}
		verdict := "reject"
		if ok {
			verdict = "accept"
		}
		logger.Debug("word", "word", w, "state", state, "accept", ok)
		fmt.Fprintf(stdout, "%s\t%s\n", w, verdict)
	}
	return nil
}

func render(w io.Writer, re *regexlib.Regex, graph, format string) error {
	if format == "none" {
		return nil
	}
	if graph == "nfa" {
		switch format {
		case "dot":
			return regexlib.ExportDOT(w, re.NFA())
		case "rules":
			_, err := io.WriteString(w, re.NFA().String())
			return err
		}
		return fmt.Errorf("format %q is not available for the NFA", format)
	}

	var d *regexlib.DFA
	switch graph {
	case "dfa":
		d = re.DFA()
	case "rawdfa":
		d = re.RawDFA()
	default:
		return fmt.Errorf("unknown graph %q", graph)
	}
	switch format {
	case "dot":
		return regexlib.ExportDOT(w, d)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.ToTable()); err != nil {
			return err
		}
		return enc.Close()
	case "rules":
		_, err := io.WriteString(w, d.String())
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeOutput(o options, stdout io.Writer, data []byte, logger *slog.Logger) error {
	if o.png {
		if o.format != "dot" || o.outFile == "-" {
			return fmt.Errorf("-png needs -format dot and an -o file")
		}
		cmd := exec.Command("dot", "-Tpng", "-o", o.outFile)
		cmd.Stdin = bytes.NewReader(data)
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("dot failed: %w", err)
		}
		logger.Info("PNG written", "file", o.outFile)
		return nil
	}
	if o.outFile == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.outFile, data, 0o644); err != nil {
		return err
	}
	logger.Info("output written", "file", o.outFile, "format", o.format)
	return nil
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		words = append(words, strings.TrimRight(sc.Text(), "\r"))
	}
	return words, sc.Err()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
