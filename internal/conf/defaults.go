// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)
	viper.SetDefault("workspace", "workspace")
	viper.SetDefault("sources", []string{})

	viper.SetDefault("output.csv.enabled", true)
	viper.SetDefault("output.csv.path", "export/csv")
	viper.SetDefault("output.json.enabled", false)
	viper.SetDefault("output.json.path", "export/json")
	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "export/mamedat.db")

	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "logs")
}
