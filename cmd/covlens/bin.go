package main

// this is cmd/root_cmd.go

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/aggregator"
	"github.com/covlens/covlens/pkg/annotation"
	"github.com/covlens/covlens/pkg/api"
	"github.com/covlens/covlens/pkg/baseline"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/differ"
	"github.com/covlens/covlens/pkg/evaluator"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/covlens/covlens/pkg/payloadmanager"
	"github.com/covlens/covlens/pkg/policymanager"
	"github.com/covlens/covlens/pkg/publisher"
	"github.com/covlens/covlens/pkg/renderer"
	"github.com/covlens/covlens/pkg/requestutils"
	"github.com/covlens/covlens/pkg/server"
	"github.com/covlens/covlens/pkg/task"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "covlens",
		Long:    `covlens aggregates raw coverage records, diffs them against the branch baseline and publishes the verdict`,
		Version: global.BinaryVersion,
		Run:     run,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	return &rootCmd
}

func run(cmd *cobra.Command, args []string) {
	// create a context that we can cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// timeout in seconds
	const gracefulTimeout = 5000 * time.Millisecond

	// a WaitGroup for the goroutines to tell us they've stopped
	wg := sync.WaitGroup{}

	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Printf("[Error] Failed to load config: " + err.Error())
		os.Exit(1)
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "covlens.log")
	}

	// You can also use logrus implementation
	// by using lumber.InstanceLogrusLogger
	logger, err := lumber.NewLogger(cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Fatalf("Could not instantiate logger %s", err.Error())
	}
	logger.Debugf("Running on local: %t", cfg.LocalRunner)

	if cfg.LocalRunner && cfg.ReporterHost != "" {
		logger.Infof("Local runner detected, changing reporter host from: %s to: %s", global.ReporterHost, cfg.ReporterHost)
		global.SetReporterHost(strings.TrimSpace(cfg.ReporterHost))
	} else {
		global.SetReporterHost(global.ReporterHostRemote)
	}
	pl, err := core.NewPipeline(cfg, logger)
	if err != nil {
		logger.Errorf("Unable to create the pipeline: %+v\n", err)
		logger.Errorf("Aborting ...")
		os.Exit(1)
	}

	baselineStore, err := baseline.NewStore(cfg, logger)
	if err != nil {
		if !cfg.LocalRunner {
			logger.Fatalf("failed to initialize baseline store: %v", err)
		}
		logger.Warnf("Baseline storage not configured, runs will diff without a baseline: %v", err)
		baselineStore = baseline.NewNoopStore(logger)
	}

	// attach plugins to pipeline
	requests := requestutils.New(logger, global.DefaultAPITimeout, backoff.NewExponentialBackOff())
	pm := payloadmanager.NewPayloadManger(logger, cfg, requests)
	pom := policymanager.NewPolicyManager(logger)
	agg := aggregator.New(logger)
	dm := differ.New(logger)
	te := evaluator.New(logger)
	rr := renderer.New(logger)
	ap := publisher.New(annotation.New(logger), logger)

	router := api.NewRouter(logger, pl.ReportChan)

	t, err := task.New(requests, logger)
	if err != nil {
		logger.Fatalf("failed to initialize task: %v", err)
	}

	pl.PayloadManager = pm
	pl.PolicyManager = pom
	pl.Aggregator = agg
	pl.BaselineDiffer = dm
	pl.ThresholdEvaluator = te
	pl.ReportRenderer = rr
	pl.AnnotationPublisher = ap
	pl.BaselineStore = baselineStore
	pl.Task = t

	logger.Infof("Covlens version: %s", global.BinaryVersion)

	wg.Add(1)
	go func() {
		defer cancel()
		defer wg.Done()
		// starting pipeline
		pl.Start(ctx)
	}()
	if cfg.ServeAPI {
		wg.Add(1)
		go func() {
			defer cancel()
			defer wg.Done()
			server.ListenAndServe(ctx, router, cfg, logger)
		}()
	}
	// listen for C-c
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// create channel to mark status of waitgroup
	// this is required to brutally kill application in case of
	// timeout
	done := make(chan struct{})

	// asynchronously wait for all the go routines
	go func() {
		// and wait for all go routines
		wg.Wait()
		logger.Debugf("main: all goroutines have finished.")
		close(done)
	}()

	// wait for signal channel
	select {
	case <-c:
		{
			logger.Debugf("main: received C-c - attempting graceful shutdown ....")
			// tell the goroutines to stop
			logger.Debugf("main: telling goroutines to stop")
			cancel()
			select {
			case <-done:
				logger.Debugf("Go routines exited within timeout")
			case <-time.After(gracefulTimeout):
				logger.Errorf("Graceful timeout exceeded. Brutally killing the application")
			}

		}
	case <-done:
		os.Exit(0)
	}

}
