package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/yourei/pkg/excerpt"
	"github.com/japaniel/yourei/pkg/match"
	"github.com/japaniel/yourei/pkg/morph"
	"github.com/japaniel/yourei/pkg/ruby"
	"github.com/japaniel/yourei/pkg/style"
	"github.com/japaniel/yourei/pkg/yourei"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("yourei", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: yourei [flags] WORD\n\nSearch yourei.jp for example sentences of WORD.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		number, offset                 int
		furigana, emphasize, firstOnly bool
		plain, dictForm, verbose       bool
		baseURL                        string
	)
	fs.IntVar(&number, "n", 1, "Number of examples to return")
	fs.IntVar(&number, "number", 1, "Number of examples to return")
	fs.IntVar(&offset, "o", 0, "Number of examples to skip before returning the next -n examples")
	fs.IntVar(&offset, "offset", 0, "Number of examples to skip before returning the next -n examples")
	fs.BoolVar(&furigana, "f", false, "Show underlined furigana where the source text has it")
	fs.BoolVar(&furigana, "furigana", false, "Show underlined furigana where the source text has it")
	fs.BoolVar(&emphasize, "e", false, "Emphasize the searched word in green")
	fs.BoolVar(&emphasize, "emphasize", false, "Emphasize the searched word in green")
	fs.BoolVar(&firstOnly, "first", false, "Emphasize only the first occurrence in each field")
	fs.BoolVar(&plain, "plain", false, "Use brackets instead of terminal colors (also set by NO_COLOR)")
	fs.BoolVar(&dictForm, "base", false, "Reduce WORD to its dictionary form before searching")
	fs.BoolVar(&verbose, "v", false, "Log progress to stderr")
	fs.StringVar(&baseURL, "url", yourei.DefaultBaseURL, "Base URL of the example site")

	// Allow flags after WORD as well as before it.
	var word string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		if word != "" {
			fs.Usage()
			return fmt.Errorf("unexpected argument %q", fs.Arg(0))
		}
		word = fs.Arg(0)
		rest = fs.Args()[1:]
	}
	if word == "" {
		fs.Usage()
		return fmt.Errorf("please provide a WORD to search for")
	}

	var logger *log.Logger
	if verbose {
		logger = log.New(stderr, "", log.LstdFlags)
	}

	var analyzer *morph.Analyzer
	if dictForm || emphasize {
		var err error
		if analyzer, err = morph.NewAnalyzer(); err != nil {
			return fmt.Errorf("create analyzer: %w", err)
		}
	}
	if dictForm {
		if base := analyzer.BaseForm(word); base != word {
			if logger != nil {
				logger.Printf("Searching dictionary form %q for %q", base, word)
			}
			word = base
		}
	}

	st := style.ANSI
	if plain || os.Getenv("NO_COLOR") != "" {
		st = style.Brackets
	}

	matchers, err := match.Compile(word, st)
	if err != nil {
		return fmt.Errorf("compile matchers: %w", err)
	}
	if logger != nil && matchers.ExactOnly() {
		logger.Printf("%q has no kanji, exact match only", word)
	}
	highlighter := match.NewHighlighter(matchers, st)
	if firstOnly {
		highlighter.Policy = match.FirstMatch
	}
	if analyzer != nil {
		highlighter.Inflector = analyzer
	}

	client := yourei.NewClient()
	client.BaseURL = baseURL
	client.Logger = logger
	examples, err := client.Search(ctx, yourei.Query{Word: word, Number: number, Offset: offset})
	if err != nil {
		return fmt.Errorf("search examples: %w", err)
	}

	formatter := &excerpt.Formatter{
		Normalizer:  ruby.Normalizer{Styles: st, Furigana: furigana, Logger: logger},
		Highlighter: highlighter,
		Emphasize:   emphasize,
		Logger:      logger,
	}
	for _, e := range examples {
		if _, err := fmt.Fprintf(stdout, "%s\n\n", formatter.Format(e)); err != nil {
			return err
		}
	}
	return nil
}
