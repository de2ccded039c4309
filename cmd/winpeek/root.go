package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"winpeek/ui"
)

var (
	log     *ui.Logger
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "winpeek",
	Short: "Inspect the command line, working directory and environment of other processes",
	Long: `winpeek answers questions about processes it does not own: whether a pid is
alive, what command line it was started with, where it runs from and what its
environment block holds. Targets that refuse access degrade to the fields the
system snapshot still reveals instead of failing the whole query.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("no_color") {
			color.NoColor = true
		}
		log = ui.NewLogger(viper.GetBool("debug"))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.winpeek.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit results as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "Log per-step query detail")

	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".winpeek")
	}

	viper.SetEnvPrefix("winpeek")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
