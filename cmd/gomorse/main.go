package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gomorse/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Conversions go to the command's
// output stream, input comes from the arguments or the command's input.
func newRootCmd() *cobra.Command {
	config := app.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gomorse",
		Short: "Morse code encoder/decoder",
		Long: `Convert characters to packed 16-bit Morse codes and back.

Encoding prints one "ch : dots" line per character. Decoding reads hex
codes and prints one "0xCODE : ch" line per code.

Example usage:
  gomorse encode "CQ DE N0CALL"
  echo "0x4002 0xF805 0x3006" | gomorse decode --strict`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&config.Strict, "strict", false, "Reject codes outside the decode table")
	rootCmd.PersistentFlags().StringVarP(&config.LogDir, "log-dir", "l", app.DefaultLogDir, "Transcript directory (empty disables the transcript)")
	rootCmd.PersistentFlags().BoolVarP(&config.LogRotateUTC, "utc", "u", app.DefaultLogRotateUTC, "Use UTC for transcript rotation")
	rootCmd.PersistentFlags().IntVar(&config.RetentionDays, "retention-days", app.DefaultRetentionDays, "Remove transcripts older than this many days (0 keeps all)")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	encodeCmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode text to Morse codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config, cmd, args, (*app.Application).EncodeText)
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [code...]",
		Short: "Decode hex Morse codes to text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config, cmd, args, (*app.Application).DecodeText)
		},
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd)
	return rootCmd
}

type convertFunc func(*app.Application, io.Reader, io.Writer) error

func run(config app.Config, cmd *cobra.Command, args []string, convert convertFunc) error {
	application := app.NewApplication(config)
	application.Logger().SetOutput(cmd.ErrOrStderr())

	if err := application.Start(); err != nil {
		return err
	}
	defer application.Shutdown()

	in := cmd.InOrStdin()
	if len(args) > 0 {
		in = strings.NewReader(strings.Join(args, " "))
	}

	return convert(application, in, cmd.OutOrStdout())
}
