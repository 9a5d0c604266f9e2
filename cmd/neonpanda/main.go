package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/neonpanda/neonpanda-client/internal/api"
	"github.com/neonpanda/neonpanda-client/internal/config"
	"github.com/neonpanda/neonpanda-client/internal/logging"
	"github.com/neonpanda/neonpanda-client/internal/navigation"
	"github.com/neonpanda/neonpanda-client/internal/prefs"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"
	"github.com/neonpanda/neonpanda-client/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	userID := flag.String("user-id", "", "id of the signed-in user")
	coachID := flag.String("coach-id", "", "id of the active coach, empty for no coach context")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: false,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     sentryDSN,
		ClientName:    "neonpanda-client",
	})

	log.Debugf("using backend api: %s", cfg.APIBaseURL)
	log.Debugf("using client logs path: [%s]", cfg.LogsPath)

	authToken := os.Getenv("NEONPANDA_AUTH_TOKEN")
	if authToken == "" {
		log.Errorf("auth token not set, use NEONPANDA_AUTH_TOKEN env var to set it")
	}

	if *userID == "" {
		log.Fatalf("user id not set, use -user-id")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefStore, err := prefs.Open(cfg.PrefsDBPath)
	if err != nil {
		log.Fatalf("open preference store: %s", err)
	}
	defer func() {
		if err := prefStore.Close(); err != nil {
			log.Errorf("close preference store: %s", err)
		}
	}()

	m := metrics.NewManager("neonpanda", "client", prometheus.DefaultRegisterer)
	client := api.NewClient(cfg.APIBaseURL, authToken, api.NewHTTPClient(cfg.RequestTimeout()), m)

	navState := navigation.NewState(ctx, client, prefStore, m, authToken != "")
	if err := navState.SetIdentity(ctx, *userID, *coachID); err != nil {
		log.Errorf("set navigation identity: %s", err)
	}

	workoutAgent := workouts.NewAgent(*userID, client, m)
	workoutAgent.SetOnNewWorkouts(func(newCount int) {
		log.Printf("%d new workout(s) arrived from the ingestion pipeline", newCount)
	})
	defer workoutAgent.Destroy()

	if err := workoutAgent.LoadRecent(ctx, workouts.DefaultRecentLimit); err != nil {
		log.Errorf("load recent workouts: %s", err)
	}

	workoutAgent.StartPolling(ctx, cfg.PollInterval())
	defer workoutAgent.StopPolling()

	renderNavigation(navState.Snapshot())
	renderRecentWorkouts(workoutAgent.Snapshot())

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()
}

func renderNavigation(snap navigation.Snapshot) {
	currentPath := "/"
	currentQuery := url.Values{}

	fmt.Println()
	fmt.Println("== navigation ==")
	for _, section := range navigation.BuildSidebar(snap, currentPath, currentQuery) {
		fmt.Printf("[%s]\n", section.Section)
		for _, entry := range section.Entries {
			line := "  " + entry.Label
			if entry.Badge != nil {
				line += fmt.Sprintf(" (%d)", *entry.Badge)
			}
			if entry.Disabled {
				line += " [disabled]"
			} else if entry.Route != "" {
				line += " -> " + entry.Route
			}
			fmt.Println(line)
		}
	}

	crumbs := navigation.BuildBreadcrumbs(currentPath)
	labels := make([]string, 0, len(crumbs))
	for _, crumb := range crumbs {
		labels = append(labels, crumb.Label)
	}
	fmt.Printf("breadcrumbs: %s\n", strings.Join(labels, " / "))
}

func renderRecentWorkouts(state workouts.State) {
	fmt.Println()
	fmt.Printf("== recent workouts (%d total) ==\n", state.TotalCount)
	for i := range state.RecentWorkouts {
		w := &state.RecentWorkouts[i]
		fmt.Printf(
			"  %s | %s | %s\n",
			workouts.FormatWorkoutSummary(w),
			workouts.FormatWorkoutTime(w.CompletedAt),
			workouts.ConfidenceLabel(w.ExtractionMetadata.Confidence),
		)
	}
}
