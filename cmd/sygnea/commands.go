package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sygnea/pkg/lint"
	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/palette"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/social"
	"github.com/goliatone/go-sygnea/pkg/vcard"
)

// --- templates ---

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List signature templates and their palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPALETTES\tDESCRIPTION")
			for _, tpl := range a.gen.Templates() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tpl.ID, tpl.Name, strings.Join(palettesFor(tpl.ID), ","), tpl.Description)
			}
			return tw.Flush()
		},
	}
}

func palettesFor(templateID string) []string {
	m, ok := palette.DefaultSelector().Manifest(templateID)
	if !ok {
		return nil
	}
	return palette.VariantNames(m)
}

// --- platforms ---

func newPlatformsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported social platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tURL")
			for _, p := range social.Platforms() {
				fmt.Fprintf(tw, "%s\t%s\t%s<handle>\n", p.ID, p.DisplayName, p.BaseURL)
			}
			return tw.Flush()
		},
	}
}

// --- render ---

func newRenderCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a signature as HTML, plain text or JSON",
		Long: `Render a signature as HTML, plain text or JSON.

Examples:
  sygnea render --profile me.yaml --template modern
  sygnea render --profile me.yaml --format text
  sygnea render --format json --palette mono -o signature.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if result.Sample {
				a.printWarning("no name in profile, rendering sample data")
			}

			var body []byte
			switch strings.ToLower(format) {
			case "json":
				body, err = json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
			default:
				f, err := render.ParseFormat(format)
				if err != nil {
					return err
				}
				if f == render.FormatText {
					body = []byte(result.Text)
				} else {
					body = []byte(result.HTML)
				}
			}
			return a.write(output, body)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, text or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// --- preview ---

func newPreviewCmd(a *app) *cobra.Command {
	var output string
	var gallery bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Write the mock email preview page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd.Context())
			if err != nil {
				return err
			}
			var href func(string) string
			if gallery {
				href = func(id string) string { return "#" + id }
			}
			page, err := a.gen.Preview(cmd.Context(), req, href)
			if err != nil {
				return err
			}
			return a.write(output, page)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&gallery, "gallery", true, "include the template picker")
	return cmd
}

// --- lint ---

func newLintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file|-]",
		Short: "Check signature HTML for email client compatibility",
		Long: `Check signature HTML for email client compatibility.

Without arguments every template is rendered with the current profile and
checked. Pass a file, or - for stdin, to check arbitrary markup.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := map[string]string{}
			var order []string

			if len(args) == 1 {
				markup, err := readInput(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				targets[args[0]] = markup
				order = append(order, args[0])
			} else {
				req, err := a.request(cmd.Context())
				if err != nil {
					return err
				}
				results, err := a.gen.Gallery(cmd.Context(), req)
				if err != nil {
					return err
				}
				for _, r := range results {
					targets[r.Template.ID] = r.HTML
					order = append(order, r.Template.ID)
				}
			}

			failed := false
			for _, name := range order {
				issues, err := lint.Check(targets[name])
				if err != nil {
					return err
				}
				if len(issues) == 0 {
					a.printSuccess("%s: no issues", name)
					continue
				}
				a.printStep("%s", name)
				for _, issue := range issues {
					line := issue.String()
					switch issue.Severity {
					case lint.SeverityError:
						a.printError("%s", line)
					case lint.SeverityWarning:
						a.printWarning("%s", line)
					default:
						a.printStatus("info", "%s", line)
					}
				}
				if lint.HasErrors(issues) {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("lint: compatibility errors found")
			}
			return nil
		},
	}
	return cmd
}

// --- qr ---

func newQRCmd(a *app) *cobra.Command {
	var output string
	var size int
	var card bool

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Export the profile as a vCard QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile()
			if err != nil {
				return err
			}
			a.checkProfile(p)
			if p.IsBlank() {
				a.printWarning("no name in profile, encoding sample data")
			}
			if card {
				text, err := vcard.Card(profile.OrDefault(p))
				if err != nil {
					return err
				}
				return a.write(output, []byte(text))
			}
			if output == "" {
				return fmt.Errorf("--output is required for PNG output")
			}
			png, err := vcard.QRCode(profile.OrDefault(p), size)
			if err != nil {
				return err
			}
			if err := a.write(output, png); err != nil {
				return err
			}
			a.printSuccess("QR code written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG output file")
	cmd.Flags().IntVar(&size, "size", vcard.DefaultSize, "image size in pixels")
	cmd.Flags().BoolVar(&card, "vcard", false, "print the vCard text instead of a QR image")
	return cmd
}

// --- helpers ---

func (a *app) write(path string, body []byte) error {
	if path == "" {
		_, err := a.out.Write(body)
		if err == nil && len(body) > 0 && body[len(body)-1] != '\n' {
			_, err = io.WriteString(a.out, "\n")
		}
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func loadPreset(path string) (*orchestrator.PresetTransformer, error) {
	return orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
