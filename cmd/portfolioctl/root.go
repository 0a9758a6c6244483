package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portfolio/internal/config"
)

var cfgFile string

// settings is the merged result of flags, config file and environment
var settings cliConfig

// cliConfig maps viper keys onto config.Config plus the admin credentials
type cliConfig struct {
	Environment     string `mapstructure:"environment"`
	SupabaseURL     string `mapstructure:"supabase_url"`
	SupabaseKey     string `mapstructure:"supabase_key"`
	SupabaseAnonKey string `mapstructure:"supabase_anon_key"`
	SupabaseDBURL   string `mapstructure:"supabase_db_url"`
	TablePrefix     string `mapstructure:"table_prefix"`
	StorageBucket   string `mapstructure:"storage_bucket"`
	MediaFolder     string `mapstructure:"media_folder"`
	AdminEmail      string `mapstructure:"admin_email"`
	AdminPassword   string `mapstructure:"admin_password"`
}

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Manage portfolio sections, sub-items and media",
	Long: `portfolioctl signs in as an admin and edits the portfolio through the
same validation and store calls as the web admin panel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolioctl.yaml)")
	rootCmd.PersistentFlags().String("email", "", "admin email (or PORTFOLIO_ADMIN_EMAIL)")
	rootCmd.PersistentFlags().String("password", "", "admin password (or PORTFOLIO_ADMIN_PASSWORD)")

	rootCmd.AddCommand(sectionsCmd, itemsCmd, mediaCmd, importCmd)
}

// initializeConfig layers viper over the server's environment config:
// flags, then PORTFOLIO_* variables, then the config file, then config.Load.
func initializeConfig(cmd *cobra.Command) error {
	_ = godotenv.Load()
	base := config.Load()

	v := viper.New()

	v.SetDefault("environment", base.Environment)
	v.SetDefault("supabase_url", base.SupabaseURL)
	v.SetDefault("supabase_key", base.SupabaseKey)
	v.SetDefault("supabase_anon_key", base.SupabaseAnonKey)
	v.SetDefault("supabase_db_url", base.SupabaseDBURL)
	v.SetDefault("table_prefix", base.TablePrefix)
	v.SetDefault("storage_bucket", base.StorageBucket)
	v.SetDefault("media_folder", config.DefaultMediaFolder)
	v.SetDefault("admin_email", os.Getenv("ADMIN_EMAIL"))
	v.SetDefault("admin_password", os.Getenv("ADMIN_PASSWORD"))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolioctl")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.BindPFlag("admin_email", cmd.Flags().Lookup("email")); err != nil {
		return err
	}
	if err := v.BindPFlag("admin_password", cmd.Flags().Lookup("password")); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&settings); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

// serverConfig returns the settings as the shared config type
func (c cliConfig) serverConfig() *config.Config {
	cfg := config.Load()
	cfg.Environment = c.Environment
	cfg.SupabaseURL = c.SupabaseURL
	cfg.SupabaseKey = c.SupabaseKey
	cfg.SupabaseAnonKey = c.SupabaseAnonKey
	cfg.SupabaseDBURL = c.SupabaseDBURL
	cfg.SupabaseJWKSURL = c.SupabaseURL + "/auth/v1/.well-known/jwks.json"
	cfg.TablePrefix = c.TablePrefix
	cfg.StorageBucket = c.StorageBucket
	return cfg
}
