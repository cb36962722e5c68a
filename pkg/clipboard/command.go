package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes a command with stdin. It exists so tests can replace exec.
// stdin may be nil.
type Runner func(ctx context.Context, stdin io.Reader, name string, args ...string) error

// LookPath resolves a binary name.
type LookPath func(name string) (string, error)

func execRunner(ctx context.Context, stdin io.Reader, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

type tool struct {
	name     string
	textArgs []string
	// mimeArgs builds the arguments that set the clipboard target type.
	mimeArgs func(mime string) []string
	// fileArgs, when set, makes the tool read the file itself instead of
	// receiving it on stdin.
	fileArgs func(mime, path string) []string
}

// Tools are probed in order; the first one found wins.
var tools = []tool{
	{
		name:     "wl-copy",
		textArgs: []string{"--type", MIMEText},
		mimeArgs: func(mime string) []string { return []string{"--type", mime} },
	},
	{
		name:     "xclip",
		textArgs: []string{"-selection", "clipboard", "-t", MIMEText},
		mimeArgs: func(mime string) []string { return []string{"-selection", "clipboard", "-t", mime} },
		fileArgs: func(mime, path string) []string {
			return []string{"-selection", "clipboard", "-t", mime, "-i", path}
		},
	},
	{
		name:     "xsel",
		textArgs: []string{"--clipboard", "--input"},
	},
	{
		name: "pbcopy",
	},
}

// Command drives a clipboard command line tool. Each invocation owns the
// selection with a single target, so Command never claims rich writes; wl-copy
// and xclip take a staged file as one MIME item instead.
type Command struct {
	tool tool
	path string
	run  Runner
}

var (
	_ Backend     = (*Command)(nil)
	_ FileWriter  = (*Command)(nil)
	_ FileCapable = (*Command)(nil)
)

// NewCommand probes for a supported tool. The returned backend reports
// Available() == false when none was found.
func NewCommand(lookPath LookPath, run Runner) *Command {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if run == nil {
		run = execRunner
	}
	c := &Command{run: run}
	for _, t := range tools {
		if path, err := lookPath(t.name); err == nil {
			c.tool = t
			c.path = path
			break
		}
	}
	return c
}

// Tool names the detected binary.
func (c *Command) Tool() string {
	return c.tool.name
}

func (c *Command) Available() bool {
	return c.path != ""
}

func (c *Command) SupportsFiles() bool {
	return c.Available() && c.tool.mimeArgs != nil
}

func (c *Command) WriteText(ctx context.Context, text string) error {
	if !c.Available() {
		return ErrUnavailable
	}
	if err := c.run(ctx, strings.NewReader(text), c.path, c.tool.textArgs...); err != nil {
		return fmt.Errorf("clipboard: write text: %w", err)
	}
	return nil
}

func (c *Command) WriteFile(ctx context.Context, mime, path string) error {
	if !c.SupportsFiles() {
		return ErrUnavailable
	}
	if c.tool.fileArgs != nil {
		if err := c.run(ctx, nil, c.path, c.tool.fileArgs(mime, path)...); err != nil {
			return fmt.Errorf("clipboard: write %s: %w", mime, err)
		}
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("clipboard: open %s: %w", path, err)
	}
	defer file.Close()
	if err := c.run(ctx, file, c.path, c.tool.mimeArgs(mime)...); err != nil {
		return fmt.Errorf("clipboard: write %s: %w", mime, err)
	}
	return nil
}
