package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/deck-timer/deck-timer/internal/simhost"
	"github.com/deck-timer/deck-timer/pkg/streamdeck"
)

// eventTimeout bounds a single event write to the plugin.
const eventTimeout = 2 * time.Second

// console is the interactive prompt driving the simulated key.
type console struct {
	rl *readline.Instance
}

func newConsole() (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "deck> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("appear"),
			readline.PcItem("disappear"),
			readline.PcItem("down"),
			readline.PcItem("up"),
			readline.PcItem("press"),
			readline.PcItem("set",
				readline.PcItem("startTimeStamp"),
				readline.PcItem("information"),
				readline.PcItem("datafile"),
			),
			readline.PcItem("wake"),
			readline.PcItem("settings"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{rl: rl}, nil
}

// Stdout returns a writer that does not garble the prompt.
func (c *console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that does not garble the prompt.
func (c *console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run reads commands until EOF, "quit" or ctx is done.
func (c *console) Run(ctx context.Context, cancel context.CancelFunc, host *simhost.Host) {
	defer c.rl.Close()

	go printCommands(ctx, c.Stdout(), host)
	printHelp(c.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" || input == "q" {
			cancel()
			return
		}

		if err := execute(ctx, host, c.Stdout(), input); err != nil {
			fmt.Fprintf(c.Stdout(), "Error: %v\n", err)
		}
	}
}

// execute runs one prompt line against host.
func execute(ctx context.Context, host *simhost.Host, out io.Writer, input string) error {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	timeout := eventTimeout
	var hold time.Duration
	if cmd == "press" || cmd == "p" {
		var err error
		if hold, err = parseHold(args); err != nil {
			return err
		}
		timeout += hold
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch cmd {
	case "help", "?":
		printHelp(out)
		return nil
	case "appear", "a":
		return host.Appear(ctx)
	case "disappear", "d":
		return host.Disappear(ctx)
	case "down":
		return host.KeyDown(ctx)
	case "up":
		return host.KeyUp(ctx)
	case "press", "p":
		return host.Press(ctx, hold)
	case "set", "s":
		if len(args) < 1 {
			return fmt.Errorf("usage: set <key> [value]")
		}
		return host.SetSetting(ctx, args[0], parseValue(strings.Join(args[1:], " ")))
	case "wake", "w":
		return host.Wake(ctx)
	case "settings":
		for k, v := range host.Settings() {
			fmt.Fprintf(out, "  %s = %v\n", k, v)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// parseHold reads the optional hold time of press in milliseconds.
func parseHold(args []string) (time.Duration, error) {
	if len(args) == 0 {
		return 100 * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("usage: press [hold-ms]")
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// parseValue turns a prompt argument into a setting value: empty removes
// the key, integers stay numeric, everything else is a string.
func parseValue(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

// printCommands echoes plugin commands until ctx is done.
func printCommands(ctx context.Context, out io.Writer, host *simhost.Host) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-host.Done():
			fmt.Fprintln(out, "[plugin disconnected]")
			return
		case cmd := <-host.Commands():
			fmt.Fprintln(out, describe(cmd))
		}
	}
}

// describe renders a command on one line.
func describe(cmd simhost.Command) string {
	if title, ok := cmd.Title(); ok {
		return fmt.Sprintf("[title] %s", title)
	}
	if msg, ok := cmd.Message(); ok {
		return fmt.Sprintf("[log] %s", msg)
	}
	if cmd.Event == streamdeck.CommandSetSettings {
		return fmt.Sprintf("[settings] %s", cmd.Payload)
	}
	return fmt.Sprintf("[%s] %s", cmd.Event, cmd.Payload)
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  appear            Key becomes visible (willAppear)
  disappear         Key is hidden (willDisappear)
  down / up         Key pressed / released
  press [ms]        Press and hold for ms (default 100), then release
  set <key> [value] Change a setting (no value removes it) and send didReceiveSettings
  settings          Show the stored settings
  wake              System woke up (systemDidWakeUp)
  help              Show this help
  quit              Exit
`)
}
