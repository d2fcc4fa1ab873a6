package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jensneuse/abstractlogger"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wundergraph/descriptor-roundtrip/pkg/roundtripreport"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "descriptor-roundtrip",
	Short: "descriptor-roundtrip checks that descriptors survive a serialization round trip",
	Long: `descriptor-roundtrip compares descriptor graphs produced by a compiler front-end
with the graphs read back from compiled metadata.

Both sides are given as YAML or JSON dumps. Every root namespace is compared
property by property and the first difference of each namespace is reported
together with the path leading to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage shortens a failed comparison to a summary, the report itself has already been printed.
func errorMessage(err error) string {
	if message, ok := roundtripreport.MismatchMessage(err, summarizeReport); ok {
		return message
	}
	return err.Error()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.descriptor-roundtrip.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".descriptor-roundtrip")
	}

	viper.SetEnvPrefix("DESCRIPTOR_ROUNDTRIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a zap logger writing to stderr at the given level.
func newLogger(level string) (abstractlogger.Logger, func(), error) {
	var (
		zapLevel zapcore.Level
		logLevel abstractlogger.Level
	)
	switch strings.ToLower(level) {
	case "debug":
		zapLevel, logLevel = zap.DebugLevel, abstractlogger.DebugLevel
	case "info":
		zapLevel, logLevel = zap.InfoLevel, abstractlogger.InfoLevel
	case "warn", "":
		zapLevel, logLevel = zap.WarnLevel, abstractlogger.WarnLevel
	case "error":
		zapLevel, logLevel = zap.ErrorLevel, abstractlogger.ErrorLevel
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", level)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, nil, err
	}
	sync := func() {
		_ = logger.Sync()
	}
	return abstractlogger.NewZapLogger(logger, logLevel), sync, nil
}
