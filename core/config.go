package core

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		Server struct {
			Host string
			Addr string
		}

		LivingApps   LivingAppsConfig
		RollbarToken string
	}

	// LivingAppsConfig points at the hosted-forms backend holding the five
	// course-management apps.
	LivingAppsConfig struct {
		BaseURL string
		Token   string
		Timeout time.Duration

		// EnableRestProxy exposes /api/rest/* -> <BaseURL>/rest/* path
		// rewriting, the same rewrite the SPA dev server performed.
		EnableRestProxy bool

		LecturersAppID    string
		ParticipantsAppID string
		RoomsAppID        string
		CoursesAppID      string
		EnrollmentsAppID  string
	}
)

// NewConfig loads configuration from an optional per-env `config/.env.<env>`
// file and the environment, prefixed with the current ENV name.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "KursManager")
	conf.SetDefault("build", "dev")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("livingAppsBaseUrl", "https://my.living-apps.de")
	conf.SetDefault("livingAppsToken", "")
	conf.SetDefault("livingAppsTimeout", 30*time.Second)
	conf.SetDefault("livingAppsEnableRestProxy", true)
	conf.SetDefault("dozentenAppId", "6356d1f3c9a26c3f2cbf99a1")
	conf.SetDefault("teilnehmerAppId", "6356d20be6b2c0f118f3b6d2")
	conf.SetDefault("raeumeAppId", "6356d2291f0ab1f7d2e1c413")
	conf.SetDefault("kurseAppId", "6356d23bd0534a9b61c7e284")
	conf.SetDefault("anmeldungenAppId", "6356d24c8ba90dd14ae2f955")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("serverHost")
	c.Server.Addr = conf.GetString("serverAddr")
	c.LivingApps = LivingAppsConfig{
		BaseURL:           strings.TrimRight(conf.GetString("livingAppsBaseUrl"), "/"),
		Token:             conf.GetString("livingAppsToken"),
		Timeout:           conf.GetDuration("livingAppsTimeout"),
		EnableRestProxy:   conf.GetBool("livingAppsEnableRestProxy"),
		LecturersAppID:    conf.GetString("dozentenAppId"),
		ParticipantsAppID: conf.GetString("teilnehmerAppId"),
		RoomsAppID:        conf.GetString("raeumeAppId"),
		CoursesAppID:      conf.GetString("kurseAppId"),
		EnrollmentsAppID:  conf.GetString("anmeldungenAppId"),
	}

	if _, err := url.Parse(c.LivingApps.BaseURL); err != nil {
		return nil, errors.Wrap(err, "parsing LivingApps base URL")
	}
	return c, nil
}

// Getwd tries to find the project root.
// go-test changes the working directory to the test package being run,
// so walk up until the module root is found.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
