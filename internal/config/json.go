package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		HashKey string `json:"hash_key"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			DSN      string `json:"dsn"`
			CacheDSN string `json:"cache_dsn"`
		} `json:"local,omitempty"`

		StaticDir string `json:"static_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
	} `json:"adapter,omitempty"`

	Connectivity struct {
		ProbeURL       string   `json:"probe_url"`
		ProbeTimeout   Duration `json:"probe_timeout"`
		SignalInterval Duration `json:"signal_interval"`
	} `json:"connectivity,omitempty"`

	Cache struct {
		Version   string `json:"version"`
		OriginURL string `json:"origin_url"`
	} `json:"cache,omitempty"`

	Client struct {
		ListenAddress string `json:"listen_address"`
		LogPath       string `json:"log_path"`
	} `json:"client,omitempty"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval"`
		ReconcileMode string   `json:"reconcile_mode"`
	} `json:"workers,omitempty"`

	Broker struct {
		AMQPURL  string `json:"amqp_url"`
		Exchange string `json:"exchange"`
	} `json:"broker,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey: jsonCfg.App.HashKey,
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				DSN:      jsonCfg.Storage.Local.DSN,
				CacheDSN: jsonCfg.Storage.Local.CacheDSN,
			},
			StaticDir: jsonCfg.Storage.StaticDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RateLimit:      jsonCfg.Adapter.RateLimit,
			RateBurst:      jsonCfg.Adapter.RateBurst,
		},
		Connectivity: Connectivity{
			ProbeURL:       jsonCfg.Connectivity.ProbeURL,
			ProbeTimeout:   time.Duration(jsonCfg.Connectivity.ProbeTimeout),
			SignalInterval: time.Duration(jsonCfg.Connectivity.SignalInterval),
		},
		Cache: Cache{
			Version:   jsonCfg.Cache.Version,
			OriginURL: jsonCfg.Cache.OriginURL,
		},
		Client: Client{
			ListenAddress: jsonCfg.Client.ListenAddress,
			LogPath:       jsonCfg.Client.LogPath,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
			ReconcileMode: jsonCfg.Workers.ReconcileMode,
		},
		Broker: Broker{
			AMQPURL:  jsonCfg.Broker.AMQPURL,
			Exchange: jsonCfg.Broker.Exchange,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
