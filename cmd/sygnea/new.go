package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sygnea/internal/prompt"
	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
)

func newNewCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a profile interactively",
		Long: `Build a profile interactively, save it and show the plain-text
signature. When --profile names an existing file its values are offered as
defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(a.errOut)
			}

			seed, err := a.loadProfile()
			if err != nil {
				seed = profile.Profile{}
			}

			flow, err := prompt.NewFlow(driver, a.gen.Templates())
			if err != nil {
				return err
			}
			answers, err := flow.Run(ctx, seed, a.cfg.Template)
			if err != nil {
				return err
			}

			result, err := a.gen.Generate(ctx, orchestrator.Request{
				Profile:  answers.Profile,
				Template: answers.Template,
				Palette:  a.cfg.Palette,
			})
			if err != nil {
				return err
			}
			if err := driver.Info(ctx, "\n"+result.Text+"\n"); err != nil {
				return err
			}

			if output == "" {
				output = a.profilePath
			}
			if output == "" {
				output = "profile.yaml"
			}
			save, err := driver.Confirm(ctx, prompt.ConfirmConfig{
				Message: fmt.Sprintf("Save profile to %s?", output),
				Default: true,
			})
			if err != nil {
				return err
			}
			if save {
				if err := profile.SaveFile(output, answers.Profile); err != nil {
					return err
				}
				a.printSuccess("profile saved to %s", output)
			}

			copyIt, err := driver.Confirm(ctx, prompt.ConfirmConfig{
				Message: "Copy the HTML signature to the clipboard?",
			})
			if err != nil {
				return err
			}
			if !copyIt {
				return nil
			}
			exp, _, err := a.exporter()
			if err != nil {
				a.printWarning("%v", err)
				return nil
			}
			status := exp.Copy(ctx, render.FormatHTML, result.Payload())
			if status.Error != "" {
				a.printError("copy failed: %s", status.Error)
				return nil
			}
			a.printSuccess("%s signature copied", result.Template.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to save the profile (defaults to --profile or profile.yaml)")
	return cmd
}
