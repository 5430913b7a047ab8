package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Nassty/cal2/internal/app"
	"github.com/Nassty/cal2/internal/config"
	"github.com/Nassty/cal2/internal/holiday"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath  string
	countryFlag string
	verbose     bool
	logger      *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cal2",
		Short: "Calendar with holidays",
		Long:  "Print month, quarter or year calendars with public holidays and custom dates highlighted. Running without a subcommand shows the current quarter.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay("q")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&countryFlag, "country", "", "Country code for the holiday provider (2 or 3 letters)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(displayCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() (*app.App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The flag wins over the config file
	country := countryFlag
	if country == "" {
		country = cfg.Country
	}

	provider := holiday.DefaultProvider()
	if country != "" {
		provider, err = holiday.ResolveProvider(country)
		if err != nil {
			return nil, err
		}
	}

	cacheDir, err := cfg.CacheDirOrDefault()
	if err != nil {
		return nil, err
	}

	store := holiday.NewStore(cacheDir, logger)
	fetcher := holiday.NewFetcher(logger)
	svc := holiday.NewService(store, fetcher, provider, logger)

	return app.New(svc, os.Stdout, time.Now, logger), nil
}

func runDisplay(mode string) error {
	m, err := app.ParseMode(mode)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	return a.Display(m)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	if verbose {
		zapLevel = zapcore.DebugLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
