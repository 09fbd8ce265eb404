package main

import (
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().StringP("config", "c", "", "the config file to use")
	rootCmd.PersistentFlags().StringP("port", "p", "", "Port for api server to run")
	rootCmd.PersistentFlags().StringP("payloadAddress", "l", "", "Payload address")
	rootCmd.PersistentFlags().String("policyFile", "", "Path of the threshold policy file")
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Run in verbose mode")
	rootCmd.PersistentFlags().BoolP("serve", "", true, "Serve the badge and report API during the run")

	rootCmd.PersistentFlags().StringP("env", "e", "prod", "Environment.")
	rootCmd.PersistentFlags().StringP("reporterhost", "", "", "Reporter backend host override.")
	rootCmd.PersistentFlags().BoolP("local", "", false, "local mode")

	return nil
}
