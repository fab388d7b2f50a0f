package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/storefront"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront shell for an SMM panel",
	Long: `storefront renders the public marketing site, blog and page shell of an
SMM panel from content fetched from a remote gateway.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the storefront version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storefront %s\n", version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./storefront.yaml)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

// loadConfig layers flags over environment (STOREFRONT_*) over the optional
// YAML file over defaults.
func loadConfig(cmd *cobra.Command) (storefront.SiteConfig, error) {
	v := viper.New()

	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("requestTimeout", 10*time.Second)
	v.SetDefault("refreshInterval", 5*time.Minute)
	v.SetDefault("sessionName", "storefront_session")
	v.SetDefault("staticDir", "public")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return storefront.SiteConfig{}, fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return storefront.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return storefront.SiteConfig{
		URL:                v.GetString("url"),
		Addr:               v.GetString("addr"),
		APIBaseURL:         v.GetString("apiBaseURL"),
		FallbackAPIBaseURL: v.GetString("fallbackAPIBaseURL"),
		RequestTimeout:     v.GetDuration("requestTimeout"),
		RefreshInterval:    v.GetDuration("refreshInterval"),
		SessionSecret:      v.GetString("sessionSecret"),
		SessionName:        v.GetString("sessionName"),
		CookieSecure:       v.GetBool("cookieSecure"),
		StaticDir:          v.GetString("staticDir"),
		Debug:              v.GetBool("debug"),
	}, nil
}
