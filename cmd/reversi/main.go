// FILE: cmd/reversi/main.go
// Package main runs a two-player hotseat reversi game in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"reversi/internal/cli"
	"reversi/internal/server/processor"
	"reversi/internal/server/service"
	clitransport "reversi/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// readlineReader adapts readline to the view's line source
type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		// Ctrl-C clears the line, Ctrl-D quits
		return "", nil
	}
	return line, err
}

func main() {
	var (
		position = flag.String("position", "", "Start from a position, e.g. '8/8/8/3WB3/3BW3/8/8/8 b'")
		color    = flag.String("color", "auto", "Colored output: auto, on, off")
		history  = flag.String("history", ".reversi_history", "Command history file (empty disables)")
	)
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	useColor := interactive
	switch *color {
	case "on":
		useColor = true
	case "off":
		useColor = false
	}

	var input cli.LineReader
	if interactive {
		rl, err := readline.NewEx(&readline.Config{
			HistoryFile:     *history,
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start line editor: %v\n", err)
			os.Exit(1)
		}
		defer rl.Close()
		input = &readlineReader{rl: rl}
	} else {
		input = cli.NewScannerReader(os.Stdin, os.Stdout)
	}

	svc := service.New(nil)
	defer svc.Shutdown(time.Second)

	view := cli.New(input, os.Stdout, useColor)
	handler := clitransport.New(processor.New(svc), view)

	view.ShowWelcome()
	if err := handler.Start(*position); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	handler.Run()
}
