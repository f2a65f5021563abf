package main

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Port        int            `json:"port"`
	Env         string         `json:"env"`
	ClientUrl   string         `json:"client_url"`
	CSRFAuthKey string         `json:"csrf_auth_key"`
	Auth        AuthConfig     `json:"auth"`
	Database    PostgresConfig `json:"database"`
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// AuthConfig points at the identity provider that issues the bearer
// tokens. Disabled is a dev escape hatch: the server then treats the raw
// bearer token as the subject claim itself, skipping signature checks.
type AuthConfig struct {
	Issuer   string `json:"issuer"`
	Audience string `json:"audience"`
	JwksUri  string `json:"jwks_uri"`
	Disabled bool   `json:"disabled"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port:        1111,
		Env:         "dev",
		ClientUrl:   "http://localhost:3000",
		CSRFAuthKey: "32-byte-long-auth-key-for-dev-00",
		Auth: AuthConfig{
			Disabled: true,
		},
		Database: DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Name:     "wtf_spaces",
	}
}

// LoadConfig loads configuration from a .config.json file if present,
// otherwise it falls back to the default dev setup. In production the
// file is required and the app panics without it.
func LoadConfig(prodFlag bool) Config {
	f, err := os.Open(".config.json")
	if err != nil {
		if prodFlag {
			panic("A .config.json file is required in production.")
		}
		fmt.Println("Using the default dev config.")
		return DefaultConfig()
	}
	defer f.Close()
	var c Config
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		panic(err)
	}
	fmt.Println("Successfully loaded .config.json")
	return c
}
