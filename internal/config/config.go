// Package config reads process settings from the environment (optionally
// seeded from a .env file) and the material library from an HCL file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"CableCheck/internal/calc/cable"
	"CableCheck/internal/calc/material"
	"CableCheck/internal/logging"
)

type Config struct {
	// Addr is the HTTP listen address
	Addr string

	// TLSCert and TLSKey enable HTTPS when both are set
	TLSCert string
	TLSKey  string

	// TokenKey signs session tokens. Empty disables authentication.
	TokenKey string

	DatabaseURL string

	// CatalogSource is "builtin", "postgres" or a .csv/.xlsx path
	CatalogSource string

	// MaterialsFile is an HCL material library; empty uses the built-in one
	MaterialsFile string

	Logging logging.Config
}

func Default() *Config {
	return &Config{
		Addr:          ":8080",
		CatalogSource: "builtin",
		Logging:       logging.DefaultConfig(),
	}
}

// Load reads the given .env files (default ".env"), then the environment.
// Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg := Default()
	setString(&cfg.Addr, "ADDR")
	setString(&cfg.TLSCert, "TLS_CERT")
	setString(&cfg.TLSKey, "TLS_KEY")
	setString(&cfg.TokenKey, "TOKEN_KEY")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.CatalogSource, "CATALOG_SOURCE")
	setString(&cfg.MaterialsFile, "MATERIALS_FILE")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Logging.Output, "LOG_OUTPUT")
	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// NeedsDatabase reports whether any configured feature reads Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.TokenKey != "" || c.CatalogSource == "postgres"
}

//go:embed materials.hcl
var defaultMaterials []byte

type materialsDoc struct {
	Materials []materialBlock `hcl:"material,block"`
	Derating  *deratingBlock  `hcl:"derating,block"`
}

type materialBlock struct {
	Name               string  `hcl:"name,label"`
	ElasticModulus     float64 `hcl:"elastic_modulus"`
	ThermalCoefficient float64 `hcl:"thermal_coefficient"`
}

type deratingBlock struct {
	SafetyFactor     *float64 `hcl:"safety_factor,optional"`
	ImportanceFactor *float64 `hcl:"importance_factor,optional"`
}

// Materials is the parsed material library and the default derating.
type Materials struct {
	Library  *material.Library
	Derating cable.Derating
}

// LoadMaterials parses path, or the built-in library when path is empty.
func LoadMaterials(path string) (*Materials, error) {
	if path == "" {
		return ParseMaterials(defaultMaterials, "materials.hcl")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMaterials(src, path)
}

func ParseMaterials(src []byte, filename string) (*Materials, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var doc materialsDoc
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, diags
	}
	if len(doc.Materials) == 0 {
		return nil, fmt.Errorf("%s: no material blocks", filename)
	}

	lib := material.NewLibrary()
	for _, b := range doc.Materials {
		m, err := material.New(b.Name, b.ElasticModulus, b.ThermalCoefficient)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		lib.Add(m)
	}

	d := cable.DefaultDerating()
	if doc.Derating != nil {
		if doc.Derating.SafetyFactor != nil {
			d.SafetyFactor = *doc.Derating.SafetyFactor
		}
		if doc.Derating.ImportanceFactor != nil {
			d.ImportanceFactor = *doc.Derating.ImportanceFactor
		}
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &Materials{Library: lib, Derating: d}, nil
}
