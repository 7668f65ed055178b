// Command lazysheet is a thin REPL around the sheet engine. It is
// enrichment beyond spec.md's core ("CLI surface: none required by the
// core") built in the style of the pack's cobra-based CLIs
// (other_examples/.../steveyegge-beads__cmd-bd-cook.go.go), logging with
// logrus the way the pack's other cobra commands do
// (other_examples/manifests/moby-moby, .../purpleidea-mgmt).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vogtb/lazysheet/position"
	"github.com/vogtb/lazysheet/sheet"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("lazysheet exited with an error")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var scriptPath string
	var rows, cols int

	root := &cobra.Command{
		Use:   "lazysheet",
		Short: "A minimal spreadsheet REPL over the dependency-and-evaluation core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sheet.New()
			log.WithField("sheet_id", s.ID.String()).Info("sheet created")

			if scriptPath != "" {
				if err := runScript(s, scriptPath); err != nil {
					return err
				}
			}
			return repl(s)
		},
	}

	root.Flags().StringVar(&scriptPath, "script", "", "path to a script of set/clear commands to preload")
	root.Flags().IntVar(&rows, "rows", 0, "unused placeholder hint for initial row capacity")
	root.Flags().IntVar(&cols, "cols", 0, "unused placeholder hint for initial column capacity")

	return root
}

// runScript executes a file of newline-delimited commands (same grammar
// as the REPL) before dropping into interactive mode.
func runScript(s *sheet.Sheet, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	log.WithField("path", path).Info("loading script")
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runCommand(s, line); err != nil {
			log.WithError(err).WithField("line", line).Warn("script command failed")
		}
	}
	return scanner.Err()
}

func repl(s *sheet.Sheet) error {
	fmt.Println("lazysheet — commands: set <cell> <text> | get <cell> | clear <cell> | print | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := runCommand(s, line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func runCommand(s *sheet.Sheet, line string) error {
	fields := strings.SplitN(line, " ", 3)
	switch fields[0] {
	case "set":
		if len(fields) < 3 {
			return fmt.Errorf("usage: set <cell> <text>")
		}
		pos, err := parseAddress(fields[1])
		if err != nil {
			return err
		}
		return s.SetCell(pos, fields[2])
	case "get":
		if len(fields) < 2 {
			return fmt.Errorf("usage: get <cell>")
		}
		pos, err := parseAddress(fields[1])
		if err != nil {
			return err
		}
		c, err := s.GetCell(pos)
		if err != nil {
			return err
		}
		if c == nil {
			fmt.Println("(empty)")
			return nil
		}
		fmt.Printf("value=%s text=%s\n", c.Value().Display(), c.Text())
		return nil
	case "clear":
		if len(fields) < 2 {
			return fmt.Errorf("usage: clear <cell>")
		}
		pos, err := parseAddress(fields[1])
		if err != nil {
			return err
		}
		return s.ClearCell(pos)
	case "print":
		return s.PrintValues(os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// parseAddress decodes "A1"-style text into a position.Position for the
// REPL; the formula package's own decoder is unexported, so the CLI
// re-implements the same letters+digits split at the surface it owns.
func parseAddress(addr string) (position.Position, error) {
	i := 0
	for i < len(addr) && addr[i] >= 'A' && addr[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(addr) {
		return position.Position{}, fmt.Errorf("invalid address %q", addr)
	}
	row, err := strconv.Atoi(addr[i:])
	if err != nil || row < 1 {
		return position.Position{}, fmt.Errorf("invalid address %q", addr)
	}
	col := position.ColumnIndex(addr[:i])
	if col < 0 {
		return position.Position{}, fmt.Errorf("invalid address %q", addr)
	}
	return position.New(row-1, col), nil
}
