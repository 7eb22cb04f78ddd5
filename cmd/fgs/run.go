package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pbnjay/memory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fraggo/fgs/internal/config"
	"github.com/fraggo/fgs/internal/decode"
	"github.com/fraggo/fgs/internal/fasta"
	"github.com/fraggo/fgs/internal/fgserrors"
	"github.com/fraggo/fgs/internal/model"
	"github.com/fraggo/fgs/internal/output"
)

func newRunCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "run [input.fasta]",
		Short: "Decode genes from a FASTA file (defaults to stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), cfgFile)
			if err != nil {
				return usageError{err}
			}
			cfg.Input = "-"
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			return runDecode(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "path to a config file")
	flags.String("train", "train", "training table directory")
	flags.Bool("whole-genome", false, "whole-genome mode (vs. short-read fragments)")
	flags.Int("threads", 0, "decoder worker count (0 = runtime.NumCPU())")
	flags.String("aa-out", "", "protein FASTA output path (default: stdout)")
	flags.String("dna-out", "", "nucleotide FASTA output path (disabled if empty)")
	flags.String("meta-out", "", "ORF metadata TSV output path (disabled if empty)")
	flags.String("format", "tsv", "output format: tsv or json")
	flags.String("train-cache", "", "optional DuckDB path to cache parsed training tables")
	flags.Bool("verbose", false, "enable development-mode (human-readable) logging")

	return cmd
}

func runDecode(cfg *config.Config) error {
	newLogger := zap.NewProduction
	if cfg.Verbose {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting decode",
		zap.String("input", cfg.Input),
		zap.Bool("whole_genome", cfg.WholeGenome),
		zap.Uint64("system_memory_bytes", memory.TotalMemory()),
	)

	train, global, err := loadTrain(cfg, logger)
	if err != nil {
		return err
	}

	reader, err := fasta.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("%w: %v", fgserrors.ErrInvalidInput, err)
	}
	defer reader.Close()

	aaOut, aaCloser, err := openOutput(cfg.AAOut)
	if err != nil {
		return err
	}
	defer aaCloser()

	var dnaOut io.Writer
	if cfg.DNAOut != "" {
		w, closer, err := openOutput(cfg.DNAOut)
		if err != nil {
			return err
		}
		defer closer()
		dnaOut = w
	}

	var metaOut io.Writer
	if cfg.MetaOut != "" {
		w, closer, err := openOutput(cfg.MetaOut)
		if err != nil {
			return err
		}
		defer closer()
		metaOut = w
	}

	writers := output.NewWriters(aaOut, dnaOut, metaOut)
	var jsonWriter *output.JSONWriter
	if cfg.Format == "json" {
		jsonWriter = output.NewJSONWriter(aaOut, cfg.DNAOut != "")
	}

	driver := &decode.Driver{Train: train, Global: global, WholeGenome: cfg.WholeGenome, Log: logger}

	var records []fasta.Record
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error("reading fasta record", zap.Error(err))
			break
		}
		records = append(records, rec)
	}

	items := make(chan decode.WorkItem, 64)
	go func() {
		defer close(items)
		for seq, rec := range records {
			items <- decode.WorkItem{Seq: seq, Record: rec}
		}
	}()

	results := driver.Run(items, cfg.Threads)

	count := 0
	err = decode.Collect(results, func(r decode.WorkResult) error {
		if r.Err != nil {
			return nil
		}
		count++
		var werr error
		if jsonWriter != nil {
			werr = jsonWriter.WritePrediction(r.Prediction)
		} else {
			werr = writers.WritePrediction(r.Prediction)
		}
		if werr != nil {
			logger.Error("writing prediction", zap.String("head", r.Head), zap.Error(werr))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if err := writers.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "decoded %d record(s)\n", count)
	return nil
}

func loadTrain(cfg *config.Config, logger *zap.Logger) (*model.Train, model.GlobalParams, error) {
	if cfg.TrainCache != "" {
		cache, err := model.OpenCache(cfg.TrainCache)
		if err != nil {
			return nil, model.GlobalParams{}, fmt.Errorf("%w: %v", fgserrors.ErrTrainingLoad, err)
		}
		defer cache.Close()

		if train, global, ok, err := cache.Get(cfg.TrainDir); err == nil && ok {
			logger.Info("loaded training tables from cache", zap.String("train_cache", cfg.TrainCache))
			return train, global, nil
		}

		train, global, err := model.NewLoader(cfg.TrainDir, logger).Load()
		if err != nil {
			return nil, model.GlobalParams{}, err
		}
		if err := cache.Put(cfg.TrainDir, train, global); err != nil {
			logger.Warn("failed to populate train cache", zap.Error(err))
		}
		return train, global, nil
	}

	return model.NewLoader(cfg.TrainDir, logger).Load()
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: creating %s: %v", fgserrors.ErrInvalidInput, path, err)
	}
	return f, func() { f.Close() }, nil
}
