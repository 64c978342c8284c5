package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		DataDir string `json:"data_dir"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Provider struct {
		Name string `json:"name"`

		S3 struct {
			Bucket          string `json:"bucket"`
			Region          string `json:"region"`
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			Prefix          string `json:"prefix"`
			UsePathStyle    bool   `json:"use_path_style"`
		} `json:"s3,omitempty"`

		Drive struct {
			BaseURL     string `json:"base_url"`
			ClientID    string `json:"client_id"`
			AccessToken string `json:"access_token"`
			RootFolder  string `json:"root_folder"`
		} `json:"drive,omitempty"`
	} `json:"provider,omitempty"`

	Sync struct {
		Interval Duration `json:"interval"`
		AutoSync bool     `json:"auto_sync"`
	} `json:"sync,omitempty"`

	Control struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"control,omitempty"`
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
			DataDir: jsonCfg.App.DataDir,
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Provider: Provider{
			Name: jsonCfg.Provider.Name,
			S3: S3{
				Bucket:          jsonCfg.Provider.S3.Bucket,
				Region:          jsonCfg.Provider.S3.Region,
				Endpoint:        jsonCfg.Provider.S3.Endpoint,
				AccessKeyID:     jsonCfg.Provider.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Provider.S3.SecretAccessKey,
				Prefix:          jsonCfg.Provider.S3.Prefix,
				UsePathStyle:    jsonCfg.Provider.S3.UsePathStyle,
			},
			Drive: Drive{
				BaseURL:     jsonCfg.Provider.Drive.BaseURL,
				ClientID:    jsonCfg.Provider.Drive.ClientID,
				AccessToken: jsonCfg.Provider.Drive.AccessToken,
				RootFolder:  jsonCfg.Provider.Drive.RootFolder,
			},
		},
		Sync: Sync{
			Interval: time.Duration(jsonCfg.Sync.Interval),
			AutoSync: jsonCfg.Sync.AutoSync,
		},
		Control: Control{
			HTTPAddress:    jsonCfg.Control.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Control.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
