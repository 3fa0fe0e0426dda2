package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/babarot/tt/internal/trash"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

func (c *CLI) Empty() error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	entries, err := c.storage.List()
	if err != nil {
		return err
	}
	entries = trash.Filter(entries, c.filterOptions())

	if len(entries) == 0 {
		fmt.Println("trash is already empty")
		return nil
	}

	if c.needsConfirmation() {
		prompt := fmt.Sprintf("permanently erase %d %s?",
			len(entries), pluralize(len(entries), "file", "files"))
		if !confirm(prompt) {
			fmt.Println("canceled")
			return nil
		}
	}

	report := c.storage.Purge(entries)

	fmt.Printf("erased %d %s, freed %s\n",
		len(report.Purged),
		pluralize(len(report.Purged), "file", "files"),
		humanize.Bytes(uint64(report.BytesFreed)),
	)
	for _, inv := range report.Invalid {
		slog.Warn("erased entry with unreadable record", "id", inv.ID, "trash", inv.Dir.Root)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "failed to erase %s: %v\n", f.Entry.ID, f.Err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d entries could not be erased", len(report.Failures))
	}
	return nil
}

func (c *CLI) needsConfirmation() bool {
	if c.option.Yes || c.option.Rm.Force {
		return false
	}
	return c.config.Core.Empty.Confirm
}

// confirm asks a y/N question on the terminal and re-prompts until the
// answer is recognizable. A non-interactive stdin counts as no.
func confirm(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		}
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
