// Command ari runs one add-to-cart invocation against a storefront and
// prints the resulting cart count.
//
//	ari [flags] "arisku=ABC-123&ariqty=2"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aokpower/ari-cart/internal/application/ari"
	"github.com/aokpower/ari-cart/internal/infrastructure/config"
	"github.com/aokpower/ari-cart/internal/infrastructure/idlookup"
	"github.com/aokpower/ari-cart/internal/infrastructure/logger"
	"github.com/aokpower/ari-cart/internal/infrastructure/notify"
	"github.com/aokpower/ari-cart/internal/infrastructure/shopify"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	var (
		logLevel    string
		stepTimeout time.Duration
		cartCookie  string
		noBadge     bool
	)

	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	flag.DurationVar(&stepTimeout, "step-timeout", -1, "Timeout for each network step; overrides config (0 disables)")
	flag.StringVar(&cartCookie, "cart", "", "Existing storefront cart token to add to")
	flag.BoolVar(&noBadge, "no-badge", false, "Run as if the page had no cart count element")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if stepTimeout >= 0 {
		cfg.ARI.StepTimeout = stepTimeout
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg, log, os.Stdout, args[0], cartCookie, noBadge)
	_ = logger.Sync(log)
	os.Exit(code)
}

// run performs one invocation and returns the process exit code. The cart
// token and badge text are written to stdout.
func run(cfg *config.Config, log *zap.Logger, stdout io.Writer, raw, cartCookie string, noBadge bool) int {
	lookup, err := idlookup.NewClient(&idlookup.Config{
		BaseURL:        cfg.Lookup.BaseURL,
		TimeoutSeconds: config.TimeoutSeconds(cfg.Lookup.Timeout),
	}, log)
	if err != nil {
		log.Error("Failed to create lookup client", zap.Error(err))
		return 1
	}

	badge := notify.NewCountBadge(cfg.Storefront.CartCountSelector)
	if noBadge {
		badge = notify.NewDetachedCountBadge(cfg.Storefront.CartCountSelector)
	}

	carts, err := shopify.NewClient(&shopify.Config{
		BaseURL:        cfg.Storefront.BaseURL,
		TimeoutSeconds: config.TimeoutSeconds(cfg.Storefront.Timeout),
	}, badge, log)
	if err != nil {
		log.Error("Failed to create storefront client", zap.Error(err))
		return 1
	}
	if cartCookie != "" {
		carts, err = carts.Session(badge, []*http.Cookie{{Name: "cart", Value: cartCookie}})
		if err != nil {
			log.Error("Failed to seed cart session", zap.Error(err))
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := ari.NewService(lookup, carts, notify.NewLogNotifier(log),
		ari.WithLogger(log),
		ari.WithStepTimeout(cfg.ARI.StepTimeout),
	)
	out := service.Run(ctx, raw)

	for _, ck := range carts.Cookies() {
		if ck.Name == "cart" {
			fmt.Fprintf(stdout, "cart token: %s\n", ck.Value)
		}
	}
	if text := badge.Text(); text != "" {
		fmt.Fprintf(stdout, "%s: %s\n", badge.Selector(), text)
	}
	if !out.Succeeded() {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: ari [flags] <params>

Adds one part to the storefront cart, the same way a host page would.

Arguments:
  params    ARI parameter string, e.g. "arisku=ABC-123&ariqty=2"

Flags:
`)
	flag.PrintDefaults()
}
