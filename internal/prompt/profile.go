// Package prompt walks a user through building a signature profile in the
// terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/social"
)

// Answers is the outcome of the interactive flow.
type Answers struct {
	Profile  profile.Profile
	Template string
}

// Flow asks for profile fields, social handles and a template.
type Flow struct {
	driver    Driver
	templates []render.Template
}

// NewFlow builds a flow offering templates in the given order.
func NewFlow(driver Driver, templates []render.Template) (*Flow, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	if len(templates) == 0 {
		return nil, errors.New("prompt: at least one template is required")
	}
	return &Flow{driver: driver, templates: templates}, nil
}

// Run prompts for every field, using seed for defaults. The seed is not
// modified.
func (f *Flow) Run(ctx context.Context, seed profile.Profile, template string) (Answers, error) {
	var out profile.Profile
	var err error

	if out.Name, err = f.driver.Input(ctx, InputConfig{
		Message:   "Full name",
		Default:   seed.Name,
		Help:      "Leave blank to preview with sample data.",
		Validator: maxLength(120),
	}); err != nil {
		return Answers{}, err
	}
	if out.Position, err = f.driver.Input(ctx, InputConfig{
		Message:   "Position",
		Default:   seed.Position,
		Validator: maxLength(120),
	}); err != nil {
		return Answers{}, err
	}
	if out.Website, err = f.driver.Input(ctx, InputConfig{
		Message:   "Website",
		Default:   seed.Website,
		Help:      "Shown without a scheme; links use https:// unless you supply one.",
		Validator: noSpaces,
	}); err != nil {
		return Answers{}, err
	}

	if out.Social, err = f.askSocial(ctx, seed.Social); err != nil {
		return Answers{}, err
	}

	chosen, err := f.askTemplate(ctx, template)
	if err != nil {
		return Answers{}, err
	}

	return Answers{Profile: out, Template: chosen}, nil
}

func (f *Flow) askSocial(ctx context.Context, seed map[string]string) (map[string]string, error) {
	platforms := social.Platforms()
	options := make([]string, len(platforms))
	var defaults []int
	for i, p := range platforms {
		options[i] = p.DisplayName
		if strings.TrimSpace(seed[p.ID]) != "" {
			defaults = append(defaults, i)
		}
	}

	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Social profiles",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(platforms) {
			continue
		}
		p := platforms[idx]
		handle, err := f.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("%s handle", p.DisplayName),
			Default:   seed[p.ID],
			Help:      "Profile URL: " + p.BaseURL + "<handle>",
			Validator: noSpaces,
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(handle) == "" {
			continue
		}
		out[p.ID] = strings.TrimSpace(handle)
	}
	return out, nil
}

func (f *Flow) askTemplate(ctx context.Context, current string) (string, error) {
	options := make([]string, len(f.templates))
	defaultIdx := 0
	for i, t := range f.templates {
		options[i] = fmt.Sprintf("%s - %s", t.Name, t.Description)
		if t.ID == current {
			defaultIdx = i
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Template",
		Options:      options,
		DefaultIndex: defaultIdx,
		PageSize:     len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(f.templates) {
		return "", fmt.Errorf("prompt: template selection %d out of range", idx)
	}
	return f.templates[idx].ID, nil
}

func maxLength(n int) func(string) error {
	return func(s string) error {
		if len([]rune(s)) > n {
			return fmt.Errorf("must be at most %d characters", n)
		}
		return nil
	}
}

func noSpaces(s string) error {
	if strings.ContainsAny(strings.TrimSpace(s), " \t") {
		return errors.New("must not contain spaces")
	}
	return nil
}
