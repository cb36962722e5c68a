package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "sygnea",
		Short:         "Render email signatures from a contact profile",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "load environment variables from this file")
	flags.StringVarP(&a.profilePath, "profile", "p", "", "profile file (YAML or JSON); sample data when empty")
	flags.StringVarP(&a.template, "template", "t", "", "template id (overrides SYGNEA_TEMPLATE)")
	flags.StringVar(&a.palette, "palette", "", "palette variant (overrides SYGNEA_PALETTE)")
	flags.StringVar(&a.socialStyle, "social-style", "", "social link style: minimal, professional, compact or badge")
	flags.BoolVar(&a.sanitize, "sanitize", false, "run rendered HTML through the sanitiser")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newTemplatesCmd(a),
		newPlatformsCmd(a),
		newRenderCmd(a),
		newPreviewCmd(a),
		newCopyCmd(a),
		newNewCmd(a),
		newServeCmd(a),
		newLintCmd(a),
		newQRCmd(a),
	)
	return root
}
