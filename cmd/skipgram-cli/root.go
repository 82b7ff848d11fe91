package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"yashubustudio/codepairs/skipgram"
)

type rootOptions struct {
	configPath    string
	envFile       string
	debug         bool
	dataPath      string
	vocabPath     string
	targetDir     string
	vocabSheet    string
	unknownPolicy string
	vocabSize     int
}

// newRootCmd wires the persistent flags shared by every subcommand. lookupEnv is
// injected so tests can run without touching the process environment.
func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "skipgram-cli",
		Short:        "Prepare skip-gram training pairs from diagnosis code tables",
		SilenceUsage: true,
		Example: `  # Write vocab.tsv and vocab_descs.tsv into ./visualization
  skipgram-cli vocab --vocab data/CMS32_DESC_LONG_SHORT_DX.xlsx

  # Stream 10 batches of 128 pairs to a CSV file
  skipgram-cli batches --batch-size 128 --count 10 --output pairs.csv

  # Show dataset counts
  skipgram-cli stats --data data/DIAGNOSES_ICD.csv`,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.json or config.yaml (default: ./config.json)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file with SKIPGRAM_* overrides")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.dataPath, "data", "", "CSV file with SUBJECT_ID and ICD9_CODE columns")
	flags.StringVar(&opts.vocabPath, "vocab", "", "spreadsheet with DIAGNOSIS CODE and LONG DESCRIPTION columns")
	flags.StringVar(&opts.targetDir, "target-dir", "", "directory for vocab.tsv and vocab_descs.tsv")
	flags.StringVar(&opts.vocabSheet, "vocab-sheet", "", "sheet to read from the vocabulary workbook (default: first)")
	flags.StringVar(&opts.unknownPolicy, "unknown-policy", "", "index for codes missing from the vocabulary: first-entry, reject or sentinel")
	flags.IntVar(&opts.vocabSize, "vocab-size", 0, "expected vocabulary size; only checked, never truncates")

	cmd.AddCommand(newVocabCmd(opts, lookupEnv), newBatchesCmd(opts, lookupEnv), newStatsCmd(opts, lookupEnv))
	return cmd
}

// resolveConfig merges defaults, the config file, the environment and flags in
// increasing order of precedence.
func resolveConfig(cmd *cobra.Command, opts *rootOptions, lookupEnv func(string) (string, bool)) (skipgram.Config, error) {
	if opts.envFile != "" {
		env, err := godotenv.Read(opts.envFile)
		switch {
		case err == nil:
			lookupEnv = withDotenv(lookupEnv, env)
		case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file"):
		default:
			return skipgram.Config{}, fmt.Errorf("read env file: %w", err)
		}
	}

	cfg, err := skipgram.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return cfg, fmt.Errorf("apply environment: %w", err)
	}

	set := func(name string, dst *string, value string) {
		if cmd.Flags().Changed(name) {
			*dst = strings.TrimSpace(value)
		}
	}
	set("data", &cfg.DataPath, opts.dataPath)
	set("vocab", &cfg.VocabPath, opts.vocabPath)
	set("target-dir", &cfg.TargetDir, opts.targetDir)
	set("vocab-sheet", &cfg.Reader.VocabSheet, opts.vocabSheet)
	if cmd.Flags().Changed("vocab-size") {
		cfg.VocabSize = opts.vocabSize
	}
	if cmd.Flags().Changed("unknown-policy") {
		policy, err := skipgram.ParseUnknownCodePolicy(opts.unknownPolicy)
		if err != nil {
			return cfg, err
		}
		cfg.UnknownPolicy = policy
	}
	return cfg, nil
}

// withDotenv layers dotenv values below the real environment.
func withDotenv(lookupEnv func(string) (string, bool), env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
}

func newLogger(cmd *cobra.Command, debug bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if debug {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}

func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
