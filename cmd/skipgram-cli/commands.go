package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"yashubustudio/codepairs/skipgram"
)

func newVocabCmd(opts *rootOptions, lookupEnv func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Build vocab.tsv and vocab_descs.tsv from the vocabulary table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts, lookupEnv)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, opts.debug)
			entries, err := skipgram.ReadVocabulary(cfg.VocabPath, cfg.Reader)
			if err != nil {
				return fmt.Errorf("read vocabulary: %w", err)
			}
			dict, _, err := skipgram.BuildVocabulary(entries, cfg.TargetDir)
			if err != nil {
				return fmt.Errorf("build vocabulary: %w", err)
			}
			if err := skipgram.WriteDescriptions(skipgram.Descriptions(entries), cfg.TargetDir); err != nil {
				return fmt.Errorf("write descriptions: %w", err)
			}
			if dups := dict.Duplicates(); len(dups) > 0 {
				logger.Warn().Int("count", len(dups)).Msg("duplicate vocabulary codes")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d codes to %s\n", dict.Len(), cfg.TargetDir)
			return nil
		},
	}
}

type batchesOptions struct {
	batchSize int
	count     int
	restart   bool
	output    string
}

func newBatchesCmd(opts *rootOptions, lookupEnv func(string) (string, bool)) *cobra.Command {
	var bopts batchesOptions
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Stream center/target batches as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts, lookupEnv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("batch-size") {
				cfg.BatchSize = bopts.batchSize
			}
			if cmd.Flags().Changed("restart") {
				cfg.Restart = bopts.restart
			}
			if bopts.count <= 0 {
				return fmt.Errorf("count must be positive, got %d", bopts.count)
			}
			logger := newLogger(cmd, opts.debug)
			p, err := skipgram.NewPipeline(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			gen, err := p.Batches(cfg.BatchSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var file *os.File
			if bopts.output != "" {
				file, err = createOutput(bopts.output)
				if err != nil {
					return err
				}
				out = file
			}
			written, err := writeBatches(out, gen, bopts.count)
			if file != nil {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("close output: %w", cerr)
				}
			}
			if errors.Is(err, skipgram.ErrExhausted) {
				return fmt.Errorf("wrote %d of %d batches (use --restart to loop): %w", written, bopts.count, err)
			}
			if err != nil {
				return err
			}
			logger.Info().Int("batches", written).Int("batch_size", gen.BatchSize()).Msg("batches written")
			return nil
		},
	}
	cmd.Flags().IntVar(&bopts.batchSize, "batch-size", skipgram.DefaultBatchSize, "pairs per batch")
	cmd.Flags().IntVar(&bopts.count, "count", 1, "number of batches to emit; running out of pairs first is an error unless --restart is set")
	cmd.Flags().BoolVar(&bopts.restart, "restart", false, "rewind the pair stream instead of stopping when it runs out")
	cmd.Flags().StringVarP(&bopts.output, "output", "o", "", "CSV file for the batches (default: stdout)")
	return cmd
}

// writeBatches emits up to count batches as batch,center,target rows and returns
// how many complete batches were written.
func writeBatches(w io.Writer, gen *skipgram.BatchGenerator, count int) (int, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"batch", "center", "target"}); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	written := 0
	var genErr error
	for written < count {
		batch, err := gen.Next()
		if err != nil {
			genErr = err
			break
		}
		for k := range batch.Centers {
			row := []string{
				strconv.Itoa(written),
				strconv.Itoa(int(batch.Centers[k])),
				strconv.FormatFloat(batch.Targets[k][0], 'f', -1, 64),
			}
			if err := writer.Write(row); err != nil {
				return written, fmt.Errorf("write batch %d: %w", written, err)
			}
		}
		written++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, fmt.Errorf("flush batches: %w", err)
	}
	return written, genErr
}

func newStatsCmd(opts *rootOptions, lookupEnv func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record, subject, vocabulary and pair counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts, lookupEnv)
			if err != nil {
				return err
			}
			p, err := skipgram.NewPipeline(cmd.Context(), cfg, newLogger(cmd, opts.debug))
			if err != nil {
				return err
			}
			s := p.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "records:       %d\n", s.Records)
			fmt.Fprintf(out, "subjects:      %d\n", s.Subjects)
			fmt.Fprintf(out, "vocabulary:    %d\n", s.Vocabulary)
			fmt.Fprintf(out, "duplicates:    %d\n", s.Duplicates)
			fmt.Fprintf(out, "unknown codes: %d\n", s.UnknownCodes)
			fmt.Fprintf(out, "pairs:         %d\n", s.Pairs)
			if cfg.BatchSize > 0 {
				fmt.Fprintf(out, "full batches:  %d (batch size %d)\n", s.Pairs/int64(cfg.BatchSize), cfg.BatchSize)
			}
			return nil
		},
	}
}
