package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/display"
	"github.com/samuelfneumann/tabular/experiment/metrics"
	"github.com/samuelfneumann/tabular/experiment/plot"
	"github.com/samuelfneumann/tabular/experiment/progress"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	"github.com/samuelfneumann/tabular/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML, JSON, or "+
		"TOML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Create the environment and agent
	env, _, err := cfg.Environment.Create(cfg.Seed)
	if err != nil {
		return err
	}
	agent, err := cfg.Agent.CreateAgent(env, cfg.Seed)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment.Environment,
		"seed":        cfg.Seed,
		"epsilon":     agent.Epsilon(),
	}).Info("created agent")

	// Create the experiment and its observers
	exp, err := experiment.NewEpisodic(env, agent, cfg.Monitor)
	if err != nil {
		return err
	}
	exp.SetLogger(log)

	returns := trackers.NewReturn(cfg.Output.Returns)
	lengths := trackers.NewEpisodeLength(cfg.Output.Lengths)
	exp.Register(returns)
	exp.Register(lengths)
	exp.Register(progress.NewLogger(log, cfg.Progress.LogEvery))

	var bar *progress.Bar
	if cfg.Progress.Bar {
		bar = progress.NewBar(os.Stdout, cfg.Progress.BarWidth,
			cfg.Monitor.NumEpisodes, 1)
		exp.Register(bar)
	}

	var frames *display.Frames
	if cfg.Display.Enabled {
		frames = display.New(env, os.Stdout, cfg.Display.Config)
		exp.Register(frames)
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		exp.Register(metrics.NewRecorder(reg, cfg.Metrics.Namespace))

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg,
			promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server failed")
			}
		}()
		defer server.Close()
		log.WithField("addr", cfg.Metrics.Addr).Info("serving metrics")
	}

	// Run the experiment
	result, runErr := exp.Run()
	if bar != nil {
		if err := bar.Close(); err != nil {
			log.WithError(err).Warn("progress bar failed")
		}
	}
	if frames != nil && frames.Err() != nil {
		log.WithError(frames.Err()).Warn("display failed")
	}
	if runErr != nil {
		return runErr
	}

	log.WithFields(logrus.Fields{
		"episodes":        result.Episodes,
		"best_avg_reward": result.BestAvgReward,
		"solved":          result.Solved,
		"states_visited":  agent.Table().Len(),
	}).Info("training finished")

	// Save the experiment data
	if cfg.Output.Returns != "" {
		if err := returns.Save(); err != nil {
			return err
		}
	}
	if cfg.Output.Lengths != "" {
		if err := lengths.Save(); err != nil {
			return err
		}
	}
	if cfg.Output.Chart != "" && len(result.AvgRewards) > 0 {
		err := plot.SaveLine(cfg.Output.Chart, "Moving average reward",
			max(cfg.Monitor.WarmUp, 1), plot.Series{
				Name:   "avg_reward",
				Values: result.AvgRewards,
			})
		if err != nil {
			return err
		}
	}

	return nil
}
