package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type StorageType string

const (
	StoragePostgres StorageType = "postgres"
	StorageMemory   StorageType = "memory"
	StorageRemote   StorageType = "remote"
)

type Application struct {
	Server        Server        `koanf:"server"`
	Database      Database      `koanf:"db"`
	Storage       Storage       `koanf:"storage"`
	Notifications Notifications `koanf:"notifications"`
	Calendar      Calendar      `koanf:"calendar"`
	Holidays      Holidays      `koanf:"holidays"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Storage struct {
	Type      StorageType `koanf:"type"`
	RemoteURL string      `koanf:"remoteurl"`
}

type Notifications struct {
	Enabled bool `koanf:"enabled"`
	// Schedule is a robfig/cron expression, e.g. "@every 1s".
	Schedule string `koanf:"schedule"`
}

type Calendar struct {
	WeekFirstDay string `koanf:"weekfirstday"`
}

type Holidays struct {
	// File optionally replaces the embedded holiday dataset.
	File string `koanf:"file"`
}

func Defaults() Application {
	return Application{
		Server: Server{Addr: ":8181"},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "agenda",
			Pass:   "",
			Name:   "agenda",
			Schema: "agenda",
		},
		Storage: Storage{Type: StoragePostgres},
		Notifications: Notifications{
			Enabled:  true,
			Schedule: "@every 1s",
		},
		Calendar: Calendar{WeekFirstDay: "sunday"},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "AGENDA_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "AGENDA_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (a Application) validate() error {
	switch a.Storage.Type {
	case StoragePostgres, StorageMemory:
	case StorageRemote:
		if a.Storage.RemoteURL == "" {
			return fmt.Errorf("storage.remoteurl is required for remote storage")
		}
	default:
		return fmt.Errorf("unknown storage type %q", a.Storage.Type)
	}
	if _, err := a.Calendar.WeekStart(); err != nil {
		return err
	}
	return nil
}

// WeekStart parses WeekFirstDay ("sunday", "Monday", ...).
func (c Calendar) WeekStart() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.WeekFirstDay, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid calendar.weekfirstday %q", c.WeekFirstDay)
}
