package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"strconv"
	"syscall"

	"github.com/babarot/tt/internal/fs"
	"github.com/babarot/tt/internal/trash"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func (c *CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	entries, err := c.storage.List()
	if err != nil {
		return err
	}
	entries = trash.Filter(entries, c.filterOptions())

	if len(entries) == 0 {
		fmt.Println("trash is empty")
		return nil
	}

	if c.option.Long {
		return c.listLong(entries)
	}
	return c.listShort(entries)
}

func (c *CLI) listShort(entries []*trash.Entry) error {
	for _, e := range entries {
		name := lo.Ternary(e.IsDir, e.Name()+"/", e.Name())
		colorFor(trash.DetectFileType(e.TrashPath)).Print(name)
		if e.Broken() {
			color.New(color.FgRed).Printf("  [%s]", brokenReason(e))
		}
		fmt.Println()
	}
	return nil
}

func (c *CLI) listLong(entries []*trash.Entry) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Size", "Owner", "Deleted", "Original Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range entries {
		name := lo.Ternary(e.IsDir, e.Name()+"/", e.Name())
		deleted := "?"
		origin := "?"
		if e.Info != nil {
			deleted = humanize.Time(e.Info.DeletionDate)
			origin = e.Info.Path
		}
		if e.Broken() {
			origin = fmt.Sprintf("%s [%s]", origin, brokenReason(e))
		}
		table.Append([]string{
			name,
			entrySize(e),
			entryOwner(e),
			deleted,
			origin,
		})
	}
	table.Render()
	return nil
}

func entrySize(e *trash.Entry) string {
	if e.Orphan == trash.OrphanMissingPayload {
		return "-"
	}
	size := e.Size
	if e.IsDir {
		if s, err := fs.DirSize(e.TrashPath); err == nil {
			size = s
		}
	}
	return humanize.Bytes(uint64(size))
}

func entryOwner(e *trash.Entry) string {
	fi, err := os.Lstat(e.TrashPath)
	if err != nil {
		return "-"
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return "-"
	}
	uid := strconv.Itoa(int(st.Uid))
	if u, err := user.LookupId(uid); err == nil {
		return u.Username
	}
	return uid
}

func brokenReason(e *trash.Entry) string {
	switch {
	case e.DecodeErr != nil:
		return "unreadable record"
	case e.Orphan != trash.OrphanNone:
		return e.Orphan.String()
	default:
		return "broken"
	}
}

func colorFor(t trash.FileType) *color.Color {
	switch t {
	case trash.TypeDirectory:
		return color.New(color.FgBlue, color.Bold)
	case trash.TypeExecutable:
		return color.New(color.FgGreen, color.Bold)
	case trash.TypeArchive:
		return color.New(color.FgRed)
	case trash.TypeConfig:
		return color.New(color.FgYellow)
	case trash.TypeImage:
		return color.New(color.FgMagenta)
	case trash.TypeVideo:
		return color.New(color.FgHiMagenta)
	case trash.TypeMusic:
		return color.New(color.FgCyan)
	case trash.TypeDocument:
		return color.New(color.FgHiWhite)
	default:
		return color.New(color.FgWhite)
	}
}
