package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Configuration struct {
	AppName             string
	Env                 string
	Port                int
	ProjectionCacheSize int
	AllowedOrigin       string
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var conf *Configuration

func IsDevelopment() bool {
	return conf != nil && conf.Env == EnvDevelopment
}

// InitConf Keeps the configuration on package scope, the way every other
// package reads it.
func InitConf(config *Configuration) {
	conf = config
}

// Init Validates the configuration and sets up logging.
func Init(config *Configuration) error {
	if config.Env != EnvDevelopment && config.Env != EnvStaging && config.Env != EnvProduction {
		return fmt.Errorf("invalid env %s", config.Env)
	}
	InitConf(config)

	initLogging(config)
	return nil
}

func initLogging(config *Configuration) {
	if config.Env == EnvDevelopment {
		log.SetFormatter(&log.TextFormatter{})
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
	}
}

func GetConfig() *Configuration {
	return conf
}
