// SPDX-License-Identifier: Apache-2.0

// Command edlinfo parses CMX 3600 EDL files and prints their edit events.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shotgunsoftware/tk-framework-editorial/edl"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "edlinfo:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		fps        float64
		lenient    bool
		shotRegexp string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "edlinfo [flags] FILE...",
		Short:         "Inspect CMX 3600 edit decision lists",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			processor, err := edl.NewProcessor(shotRegexp)
			if err != nil {
				return err
			}

			for _, path := range args {
				list := edl.New(fps)
				list.SetLogger(logger)
				list.SetLenient(lenient)
				list.SetVisitor(processor.Process)
				if err := list.ReadCMX(path); err != nil {
					return err
				}
				logger.WithFields(logrus.Fields{
					"file":  path,
					"title": list.Title(),
					"edits": len(list.Edits()),
				}).Info("parsed EDL")
				fmt.Fprintln(cmd.OutOrStdout(), renderList(list))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 24, "frame rate used to interpret timecodes")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip unrecognized lines instead of failing")
	cmd.Flags().StringVar(&shotRegexp, "shot-regexp", "", "pattern extracting shot_name/type/format/version from clip names")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
