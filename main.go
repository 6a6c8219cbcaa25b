package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Configuration file (falls back to built-in defaults)")
	webMode := flag.Bool("web", false, "Start the JSON web API instead of a console run")
	addr := flag.String("addr", "", "Web API listen address (overrides the config)")
	reverseMode := flag.Bool("reverse", false, "Solve the initial capital needed for the configured monthly yield")
	compareMode := flag.Bool("compare", false, "Race every modality in the catalog to the configured target")
	refreshRates := flag.Bool("refresh", false, "Force a rate refresh before running")
	flag.Parse()

	config, err := LoadConfigOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(config.Logging)
	rates := NewRateProvider(config.Market.APIURL, config.NewRateCache(), config.RefreshInterval(), log)

	ctx := context.Background()
	if *refreshRates {
		if err := rates.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("forced rate refresh failed")
		}
	}
	snap := rates.Snapshot(ctx)

	if *webMode {
		listenAddr := config.Server.Addr
		if *addr != "" {
			listenAddr = *addr
		}
		server := NewWebServer(config, rates, listenAddr, log)
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("web server stopped")
		}
		return
	}

	sc := config.Scenario
	modality, err := ModalityByName(sc.Modality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (known: %v)\n", err, ModalityNames())
		os.Exit(1)
	}
	if sc.CDIPercent > 0 {
		modality = modality.WithCDIPercent(sc.CDIPercent)
	}

	switch {
	case *reverseMode:
		runReverse(sc, modality, snap, rates.FreshnessLabel())
	case *compareMode:
		runComparison(sc, snap, rates.FreshnessLabel())
	default:
		runForward(sc, modality, snap, rates.FreshnessLabel())
	}
}

func runForward(sc ScenarioConfig, m Modality, snap RateSnapshot, freshness string) {
	s, err := NewForwardScenario(sc.InitialCapital, sc.MonthlyContribution, sc.TargetBalance,
		m.CDIPercent, snap.MonthlyRate, sc.ApplyTax, sc.ApplyInflation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	proj := BuildProjection(s, Simulate(s, m))
	fmt.Print(ForwardReport(s, m, proj, snap, freshness))
}

func runReverse(sc ScenarioConfig, m Modality, snap RateSnapshot, freshness string) {
	s, err := NewReverseScenario(sc.DesiredMonthlyYield, sc.HorizonMonths, sc.MonthlyContribution,
		m.CDIPercent, snap.MonthlyRate, sc.ApplyTax, sc.ApplyInflation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := SolveRequiredCapital(s, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(ReverseReport(s, m, res, snap, freshness))
}

func runComparison(sc ScenarioConfig, snap RateSnapshot, freshness string) {
	entries, err := CompareModalities(sc.InitialCapital, sc.MonthlyContribution, sc.TargetBalance,
		snap.MonthlyRate, sc.ApplyTax, ModalityNames())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(ComparisonReport(entries, sc.TargetBalance, snap, freshness))
}
