package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/deosjr/tlisp/lisp"
	"github.com/deosjr/tlisp/prelude"
)

const (
	historyFile = ".tlisp_history"
	promptMain  = "> "
	promptCont  = "... "
)

const helpText = `REPL commands:
  :ast EXPR  print EXPR as read, without evaluating it
  :help      show this text
  :quit      exit the REPL`

func main() {
	log.SetFlags(0)
	log.SetPrefix("tlisp: ")

	expr := flag.String("e", "", "evaluate `expression` and print its value")
	noPrelude := flag.Bool("no-prelude", false, "do not load the prelude")
	maxExpansions := flag.Int("max-expansions", lisp.DefaultMaxExpansions, "macro expansion steps per form, 0 for no limit")
	flag.Parse()

	l := lisp.New(lisp.WithMaxExpansions(*maxExpansions))
	if !*noPrelude {
		if err := prelude.Load(l); err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *expr != "":
		e, err := l.Eval(*expr)
		exitOnError(err)
		fmt.Println(e)
	case flag.NArg() > 0:
		for _, filename := range flag.Args() {
			exitOnError(l.LoadFile(filename))
		}
	default:
		os.Exit(startREPL(l))
	}
}

// exitOnError ends the process when err is set; exit called from lisp
// keeps its status code.
func exitOnError(err error) {
	if err == nil {
		return
	}
	var exit *lisp.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func startREPL(l lisp.Lisp) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(src, ":") {
			cmd, arg, _ := strings.Cut(src, " ")
			switch cmd {
			case ":quit":
				return 0
			case ":help":
				fmt.Println(helpText)
			case ":ast":
				sexprs, err := lisp.Multiparse(arg)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				for _, e := range sexprs {
					fmt.Printf("%s\t%s\n", lisp.TypeName(e), e)
				}
			default:
				fmt.Println("unknown command, type :help for a list")
			}
			continue
		}

		e, err := l.Eval(src)
		if err != nil {
			var exit *lisp.ExitError
			if errors.As(err, &exit) {
				return exit.Code
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(e)
	}
}

// readInput keeps prompting while the collected lines do not yet form
// complete expressions. ok is false at end of input.
func readInput(ln *liner.State) (src string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Print(err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := lisp.Multiparse(src); lisp.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
