package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeAndRes/Brackets/internal/journal"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const historyFileName = ".brackets_history"

// MenuCmd returns the interactive menu command.
func MenuCmd(cfg *journal.Config, env map[string]string, stdin io.Reader) *Command {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "menu",
		Short: "Interactive prompt over the same commands",
		Long: `Run commands from an interactive prompt with history and tab
completion. "help" lists the commands, "exit" leaves.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execMenu(ctx, o, cfg, env, stdin)
		},
	}
}

func execMenu(ctx context.Context, o *IO, cfg *journal.Config, env map[string]string, stdin io.Reader) error {
	readLine, closeInput := menuInput(env, stdin)
	defer closeInput()

	for ctx.Err() == nil {
		line, readErr := readLine()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}

			return readErr
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help":
			for _, cmd := range menuCommands(cfg, env, stdin) {
				o.Println(cmd.HelpLine())
			}

			continue
		}

		dispatchMenuLine(ctx, o, cfg, env, stdin, fields)
	}

	return nil
}

// dispatchMenuLine runs one prompt line through the command registry.
// Errors are printed, not returned: a failed command must not end the
// session.
func dispatchMenuLine(ctx context.Context, o *IO, cfg *journal.Config, env map[string]string, stdin io.Reader, fields []string) {
	for _, cmd := range menuCommands(cfg, env, stdin) {
		if cmd.Name() == fields[0] {
			_ = cmd.Run(ctx, o, fields[1:])

			return
		}
	}

	o.ErrPrintln("error: unknown command:", fields[0])
}

// menuCommands is the registry minus the menu itself.
func menuCommands(cfg *journal.Config, env map[string]string, stdin io.Reader) []*Command {
	var cmds []*Command

	for _, cmd := range newCommandSet(cfg, env, stdin) {
		if cmd.Name() != "menu" {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

// menuInput picks the line reader: liner with history and completion on
// a real terminal, a plain scanner when input is piped (and in tests).
func menuInput(env map[string]string, stdin io.Reader) (func() (string, error), func()) {
	if stdin != os.Stdin || !liner.TerminalSupported() {
		scanner := bufio.NewScanner(stdin)

		return func() (string, error) {
			if !scanner.Scan() {
				if scanErr := scanner.Err(); scanErr != nil {
					return "", scanErr
				}

				return "", io.EOF
			}

			return scanner.Text(), nil
		}, func() {}
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	var names []string
	for _, cmd := range menuCommands(&journal.Config{}, nil, nil) {
		names = append(names, cmd.Name())
	}

	names = append(names, "help", "exit")

	state.SetCompleter(func(line string) []string {
		var out []string

		for _, name := range names {
			if strings.HasPrefix(name, line) {
				out = append(out, name)
			}
		}

		return out
	})

	historyPath := ""
	if home := env["HOME"]; home != "" {
		historyPath = filepath.Join(home, historyFileName)

		if file, openErr := os.Open(historyPath); openErr == nil {
			_, _ = state.ReadHistory(file)
			_ = file.Close()
		}
	}

	readLine := func() (string, error) {
		line, promptErr := state.Prompt("brackets> ")
		if promptErr != nil {
			// Ctrl-C clears the line instead of leaving the session.
			if errors.Is(promptErr, liner.ErrPromptAborted) {
				return "", nil
			}

			return "", promptErr
		}

		if strings.TrimSpace(line) != "" {
			state.AppendHistory(line)
		}

		return line, nil
	}

	closeInput := func() {
		if historyPath != "" {
			if file, createErr := os.Create(historyPath); createErr == nil {
				_, _ = state.WriteHistory(file)
				_ = file.Close()
			}
		}

		_ = state.Close()
	}

	return readLine, closeInput
}
