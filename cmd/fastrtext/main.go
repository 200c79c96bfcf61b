// Copyright 2026 The fastrtext Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/bananemure/fastrtext"
	"github.com/bananemure/fastrtext/cache"
	"github.com/bananemure/fastrtext/engine/exec"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "fastrtext",
		Usage: "Query and train fastText word-embedding and classification models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "binary",
				Usage: "Name or path of the fasttext binary",
				Value: "fasttext",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "train",
				Usage:     "Run a training command (supervised, skipgram, cbow, quantize)",
				ArgsUsage: "<verb> [fasttext arguments...]",
				Action:    trainCommand,
			},
			{
				Name:      "predict",
				Usage:     "Predict labels for sentences given as arguments",
				ArgsUsage: "<sentence>...",
				Action:    predictCommand,
				Flags: append(modelFlags(),
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"k-best"},
						Usage:   "Number of labels to predict per sentence",
						Value:   1,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum probability for a prediction to be reported",
						Value: 0,
					},
				),
			},
			{
				Name:      "nn",
				Usage:     "Print the nearest neighbors of a word",
				ArgsUsage: "<word>",
				Action:    nnCommand,
				Flags: append(modelFlags(),
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of neighbors to report",
						Value: 10,
					},
				),
			},
			{
				Name:      "analogies",
				Usage:     "Complete the analogy A - B + C (berlin germany france -> paris)",
				ArgsUsage: "<a> <b> <c>",
				Action:    analogiesCommand,
				Flags: append(modelFlags(),
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of completions to report",
						Value: 10,
					},
				),
			},
			{
				Name:   "words",
				Usage:  "Print the model vocabulary, one word per line",
				Action: wordsCommand,
				Flags:  modelFlags(),
			},
			{
				Name:   "labels",
				Usage:  "Print the labels of a supervised model, one per line",
				Action: labelsCommand,
				Flags:  modelFlags(),
			},
			{
				Name:   "params",
				Usage:  "Print the hyperparameters the model was trained with",
				Action: paramsCommand,
				Flags:  modelFlags(),
			},
			{
				Name:      "vector",
				Usage:     "Print the embedding vectors of words",
				ArgsUsage: "<word>...",
				Action:    vectorCommand,
				Flags: append(modelFlags(),
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to a BadgerDB directory caching word vectors",
					},
				),
			},
			{
				Name:      "distance",
				Usage:     "Print the cosine distance between two words",
				ArgsUsage: "<word1> <word2>",
				Action:    distanceCommand,
				Flags:     modelFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "model",
			Aliases:  []string{"m"},
			Usage:    "Path to the model file (.bin or .ftz)",
			Required: true,
		},
	}
}

func newEngine(c *cli.Context, progress bool) (*exec.Engine, error) {
	opts := []exec.Option{exec.WithBinary(c.String("binary"))}
	if progress {
		opts = append(opts, exec.WithProgress(os.Stderr))
	}
	return exec.New(opts...)
}

func openModel(c *cli.Context, opts ...fastrtext.Option) (*fastrtext.Model, error) {
	eng, err := newEngine(c, false)
	if err != nil {
		return nil, err
	}

	model, err := fastrtext.Open(context.Background(), c.String("model"), append(opts, fastrtext.WithEngine(eng))...)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	return model, nil
}

func trainCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("training arguments are required, e.g. supervised -input train.txt -output model")
	}

	eng, err := newEngine(c, true)
	if err != nil {
		return err
	}

	model, err := fastrtext.Train(context.Background(), args, fastrtext.WithEngine(eng))
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	defer model.Close()

	fmt.Fprintf(os.Stderr, "Model written to %s\n", model.Path())
	return nil
}

func predictCommand(c *cli.Context) error {
	sentences := c.Args().Slice()
	if len(sentences) == 0 {
		return fmt.Errorf("at least one sentence is required")
	}

	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	predictions, err := model.Predict(context.Background(), sentences, c.Int("k"), float32(c.Float64("threshold")))
	if err != nil {
		return err
	}

	for _, row := range predictions {
		fmt.Println(formatPredictions(row))
	}
	return nil
}

func nnCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one word is required")
	}

	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	neighbors, err := model.NearestNeighbors(context.Background(), c.Args().First(), c.Int("k"))
	if err != nil {
		return err
	}

	for _, n := range neighbors {
		fmt.Println(formatNeighbor(n))
	}
	return nil
}

func analogiesCommand(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("exactly three words are required: <a> <b> <c>")
	}

	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	args := c.Args()
	neighbors, err := model.Analogies(context.Background(), args.Get(0), args.Get(1), args.Get(2), c.Int("k"))
	if err != nil {
		return err
	}

	for _, n := range neighbors {
		fmt.Println(formatNeighbor(n))
	}
	return nil
}

func wordsCommand(c *cli.Context) error {
	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	words, err := model.Words(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(words, "\n"))
	return nil
}

func labelsCommand(c *cli.Context) error {
	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	labels, err := model.Labels(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(labels, "\n"))
	return nil
}

func paramsCommand(c *cli.Context) error {
	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	params, err := model.Parameters(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("model          %s\n", params.Model)
	fmt.Printf("loss           %s\n", params.Loss)
	fmt.Printf("dim            %d\n", params.Dim)
	fmt.Printf("ws             %d\n", params.WindowSize)
	fmt.Printf("epoch          %d\n", params.Epoch)
	fmt.Printf("minCount       %d\n", params.MinCount)
	fmt.Printf("neg            %d\n", params.Neg)
	fmt.Printf("wordNgrams     %d\n", params.WordNgrams)
	fmt.Printf("bucket         %d\n", params.Bucket)
	fmt.Printf("minn           %d\n", params.MinN)
	fmt.Printf("maxn           %d\n", params.MaxN)
	fmt.Printf("lrUpdateRate   %d\n", params.LRUpdateRate)
	fmt.Printf("t              %g\n", params.Sampling)
	return nil
}

func vectorCommand(c *cli.Context) error {
	words := c.Args().Slice()
	if len(words) == 0 {
		return fmt.Errorf("at least one word is required")
	}

	var opts []fastrtext.Option
	if cachePath := c.String("cache"); cachePath != "" {
		vectorCache, err := cache.Open(cachePath, false)
		if err != nil {
			return fmt.Errorf("failed to open vector cache: %w", err)
		}
		defer vectorCache.Close()
		opts = append(opts, fastrtext.WithVectorCache(vectorCache))
	}

	model, err := openModel(c, opts...)
	if err != nil {
		return err
	}
	defer model.Close()

	vectors, err := model.WordVectors(context.Background(), words)
	if err != nil {
		return err
	}

	for i, vector := range vectors {
		fmt.Printf("%s %s\n", words[i], formatVector(vector))
	}
	return nil
}

func distanceCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("exactly two words are required")
	}

	model, err := openModel(c)
	if err != nil {
		return err
	}
	defer model.Close()

	args := c.Args()
	distance, err := model.Distance(context.Background(), args.Get(0), args.Get(1))
	if err != nil {
		return err
	}
	fmt.Printf("%g\n", distance)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
