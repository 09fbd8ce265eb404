package config

import (
	"github.com/covlens/covlens/pkg/global"
	"github.com/spf13/viper"
)

func setDefaultConfig() {
	viper.SetDefault("LogConfig.EnableConsole", true)
	viper.SetDefault("LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("LogConfig.ConsoleLevel", "debug")
	viper.SetDefault("LogConfig.EnableFile", true)
	viper.SetDefault("LogConfig.FileJSONFormat", true)
	viper.SetDefault("LogConfig.FileLevel", "debug")
	viper.SetDefault("LogConfig.FileLocation", global.HomeDir+"/covlens.log")
	viper.SetDefault("PolicyFile", global.PolicyFileName)
	viper.SetDefault("Env", "prod")
	viper.SetDefault("Port", "9876")
	viper.SetDefault("Verbose", false)
}
