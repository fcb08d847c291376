package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"grocery-voice-ledger/config"
	"grocery-voice-ledger/console"
	"grocery-voice-ledger/display"
	"grocery-voice-ledger/ledger"
	"grocery-voice-ledger/speech_extraction"
	"grocery-voice-ledger/speech_to_text"
)

func rootCmd(fileSys afero.Fs, homeDir string) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Voice driven grocery ledger",
		Long: `grocery-voice-ledger keeps a grocery list from short spoken commands.

Say "hello device" to wake it, then for example:
  "two kilo aloo"            add 2 kg aloo
  "update milk to 3 packet"  change the milk entry
  "delete last"              remove the most recent entry
  "exit"                     show the list and export it as CSV`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	load := func(c *cobra.Command) (*app, error) {
		return newApp(fileSys, homeDir, configPath, logLevel, c.OutOrStdout(), c.ErrOrStderr())
	}

	cmd.AddCommand(
		listenCmd(load),
		textCmd(load),
		transcribeCmd(load),
		showCmd(load),
		exportCmd(load),
		configCmd(fileSys),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(c *cobra.Command, args []string) {
				fmt.Fprintf(c.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

type loadFunc func(c *cobra.Command) (*app, error)

func listenCmd(load loadFunc) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Run a voice session from the microphone",
		RunE: func(c *cobra.Command, args []string) error {
			a, err := load(c)
			if err != nil {
				return err
			}

			if modelPath == "" {
				modelPath = a.cfg.Speech.Model
			}

			if modelPath == "" {
				return fmt.Errorf("model file not specified")
			}

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			model, err := whisper.New(modelPath)
			if err != nil {
				return fmt.Errorf("error loading model: %w", err)
			}

			defer model.Close()

			sttEngine, err := speech_to_text.New(&speech_to_text.Config{
				Model:    model,
				Language: a.cfg.Speech.Language,
				Logger:   a.logger,
			})
			if err != nil {
				return fmt.Errorf("error with speech_to_text.New: %w", err)
			}

			mic, err := speech_extraction.New(&speech_extraction.Config{
				FileSys:       a.fileSys,
				STTEngine:     sttEngine,
				QuietTime:     a.cfg.Speech.QuietTime,
				ListenTimeout: a.cfg.Speech.ListenTimeout,
				PhraseLimit:   a.cfg.Speech.PhraseLimit,
				DumpDir:       a.cfg.Speech.DumpDir,
				Logger:        a.logger,
			})
			if err != nil {
				return fmt.Errorf("error with speech_extraction.New: %w", err)
			}

			defer func() {
				if err := mic.Close(); err != nil {
					a.logger.Warn("Error while freeing audio", "error", err)
				}
			}()

			return a.runSession(ctx, mic)
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model file for whisper")

	return cmd
}

func textCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "text",
		Short: "Run a session from typed lines on stdin",
		RunE: func(c *cobra.Command, args []string) error {
			a, err := load(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			in, err := console.New(&console.Config{
				In:     c.InOrStdin(),
				Prompt: a.prompt,
			})
			if err != nil {
				return err
			}

			return a.runSession(ctx, in)
		},
	}
}

func transcribeCmd(load loadFunc) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "transcribe <file.wav>",
		Short: "Transcribe a 16 kHz mono wav file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := load(c)
			if err != nil {
				return err
			}

			if modelPath == "" {
				modelPath = a.cfg.Speech.Model
			}

			if modelPath == "" {
				return fmt.Errorf("model file not specified")
			}

			model, err := whisper.New(modelPath)
			if err != nil {
				return fmt.Errorf("error loading model: %w", err)
			}

			defer model.Close()

			sttEngine, err := speech_to_text.New(&speech_to_text.Config{
				Model:    model,
				Language: a.cfg.Speech.Language,
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}

			segments, err := sttEngine.ProcessFile(a.fileSys, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), speech_to_text.Text(segments))

			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model file for whisper")

	return cmd
}

func showCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored ledger",
		RunE: func(c *cobra.Command, args []string) error {
			a, err := load(c)
			if err != nil {
				return err
			}

			store, err := a.openLedger()
			if err != nil {
				return err
			}

			entries, err := store.Entries()
			if err != nil {
				return err
			}

			table, err := display.New(&display.Config{Out: c.OutOrStdout()})
			if err != nil {
				return err
			}

			return table.Show(entries)
		},
	}
}

func exportCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the stored ledger as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := load(c)
			if err != nil {
				return err
			}

			path := a.cfg.Export.Path
			if len(args) == 1 {
				path = args[0]
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := a.fileSys.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			store, err := a.openLedger()
			if err != nil {
				return err
			}

			n, err := store.ExportCSV(path)
			if errors.Is(err, ledger.ErrNoEntries) {
				fmt.Fprintln(c.OutOrStdout(), "Ledger is empty")

				return nil
			}

			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Exported %d item(s) to %s\n", n, path)

			return nil
		},
	}
}

func configCmd(fileSys afero.Fs) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := config.ProjectConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			exists, err := afero.Exists(fileSys, path)
			if err != nil {
				return err
			}

			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().SaveToFile(fileSys, path); err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Wrote %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
