// Package profile resolves backend configurations. Built-in profiles
// describe the lab environments; an optional YAML file and environment
// variables layer user overrides on top. Credentials never live in the
// built-ins; they come from the profiles file, a .env file, or
// SENSORCTL_* environment variables.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/util"
)

// Backend keys, one per management backend.
const (
	BackendAgent     = "agent"
	BackendAnalytics = "analytics"
	BackendSensor    = "sensor"
	BackendYGW       = "ygw"
)

const defaultUserRoles = "system,sensor-admin,tenant-admin"

// Environment maps backend keys to their configs.
type Environment map[string]orchestrator.Config

// builtinEnvironments returns the shipped lab profiles. dev0 reaches
// each backend directly; dev1 goes through the API gateway, which
// terminates authentication.
func builtinEnvironments() map[string]Environment {
	return map[string]Environment{
		"dev0": {
			BackendAgent: {
				Name:        BackendAgent,
				URL:         "https://orchestrate.dev0.sensorlab.local",
				LoginPaths:  []string{"/api/v1/auth/login"},
				LogoutPaths: []string{"/api/v1/auth/logout"},
			},
			BackendAnalytics: {
				Name:        BackendAnalytics,
				URL:         "https://analytics.dev0.sensorlab.local",
				LoginPaths:  []string{"/api/v1/auth/login"},
				LogoutPaths: []string{"/api/v1/auth/logout"},
			},
			BackendSensor: {
				Name: BackendSensor,
				URL:  "https://10.250.4.254",
				Port: "9081",
				// Session APIs and the SAT search API sit behind
				// separate auth realms; each needs its own login.
				LoginPaths: []string{"/nbapi/login", "/nbapiemswsweb/login"},
			},
			BackendYGW: {
				Name: BackendYGW,
				URL:  "http://localhost",
				Port: "8444",
			},
		},
		"dev1": {
			BackendAgent: {
				Name:           BackendAgent,
				URL:            "https://10.250.1.192",
				Port:           "10015",
				GatewayFronted: true,
				UserRoles:      defaultUserRoles,
			},
			BackendAnalytics: {
				Name:           BackendAnalytics,
				URL:            "https://10.250.1.192",
				Port:           "10001",
				GatewayFronted: true,
				UserRoles:      defaultUserRoles,
			},
			BackendSensor: {
				Name:           BackendSensor,
				URL:            "https://10.250.1.192",
				Port:           "9081",
				GatewayFronted: true,
				UserRoles:      defaultUserRoles,
			},
			BackendYGW: {
				Name:           BackendYGW,
				URL:            "http://localhost",
				Port:           "8444",
				GatewayFronted: true,
				UserRoles:      defaultUserRoles,
			},
		},
	}
}

// DefaultPath returns the default profiles file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sensorctl_profiles.yaml"
	}
	return filepath.Join(home, ".sensorctl", "profiles.yaml")
}

// backendOverride mirrors Config in YAML with pointers where a zero
// value must be distinguishable from "not set".
type backendOverride struct {
	Name           string   `yaml:"name"`
	URL            string   `yaml:"url"`
	Port           *string  `yaml:"port"`
	GatewayFronted *bool    `yaml:"gateway_fronted"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	LoginPaths     []string `yaml:"login_paths"`
	LogoutPaths    []string `yaml:"logout_paths"`
	TenantID       string   `yaml:"tenant_id"`
	UserRoles      string   `yaml:"user_roles"`
	StrictLogin    *bool    `yaml:"strict_login"`
}

// profileFile is the YAML document shape.
type profileFile struct {
	Environments map[string]map[string]backendOverride `yaml:"environments"`
}

// Environments returns the sorted names of all known environments,
// built-in plus any defined in the profiles file at path.
func Environments(path string) []string {
	envs := builtinEnvironments()
	if file, err := readFile(path, path != ""); err == nil && file != nil {
		for name := range file.Environments {
			if _, ok := envs[name]; !ok {
				envs[name] = Environment{}
			}
		}
	}
	names := make([]string, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves the config for one backend in one environment:
// built-in profile, then the YAML file at path (DefaultPath when
// empty), then .env and SENSORCTL_* environment variables.
func Load(path, env, backend string) (orchestrator.Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	file, err := readFile(path, explicit)
	if err != nil {
		return orchestrator.Config{}, err
	}

	cfg, ok := builtinEnvironments()[env][backend]
	if !ok {
		// Unknown environments are fine if the file defines them.
		if file == nil || file.Environments[env] == nil {
			return orchestrator.Config{}, fmt.Errorf("%w: unknown environment %q", util.ErrInvalidProfile, env)
		}
		cfg = orchestrator.Config{Name: backend}
	}

	if file != nil {
		if override, ok := file.Environments[env][backend]; ok {
			applyOverride(&cfg, override)
		}
	}
	if cfg.URL == "" {
		return orchestrator.Config{}, fmt.Errorf("%w: no url for backend %q in environment %q", util.ErrInvalidProfile, backend, env)
	}

	// .env is a convenience for lab credentials; a missing file is
	// the normal case.
	if err := godotenv.Load(); err == nil {
		util.Debug("loaded credentials from .env")
	}
	applyEnv(&cfg, backend)

	return cfg, nil
}

func readFile(path string, explicit bool) (*profileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		if explicit {
			return nil, fmt.Errorf("read profiles %s: %w", path, err)
		}
		return nil, nil
	}
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", util.ErrInvalidProfile, path, err)
	}
	return &file, nil
}

func applyOverride(cfg *orchestrator.Config, o backendOverride) {
	if o.Name != "" {
		cfg.Name = o.Name
	}
	if o.URL != "" {
		cfg.URL = o.URL
	}
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	if o.GatewayFronted != nil {
		cfg.GatewayFronted = *o.GatewayFronted
	}
	if o.Username != "" {
		cfg.Username = o.Username
	}
	if o.Password != "" {
		cfg.Password = o.Password
	}
	if o.LoginPaths != nil {
		cfg.LoginPaths = o.LoginPaths
	}
	if o.LogoutPaths != nil {
		cfg.LogoutPaths = o.LogoutPaths
	}
	if o.TenantID != "" {
		cfg.TenantID = o.TenantID
	}
	if o.UserRoles != "" {
		cfg.UserRoles = o.UserRoles
	}
	if o.StrictLogin != nil {
		cfg.StrictLogin = *o.StrictLogin
	}
}

// applyEnv layers SENSORCTL_* variables over the config. Per-backend
// variables are keyed by the upper-cased backend name.
func applyEnv(cfg *orchestrator.Config, backend string) {
	prefix := "SENSORCTL_" + strings.ToUpper(backend) + "_"
	if v := os.Getenv(prefix + "USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(prefix + "PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(prefix + "URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv(prefix + "PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SENSORCTL_TENANT_ID"); v != "" {
		cfg.TenantID = v
	}
	if v := os.Getenv("SENSORCTL_USER_ROLES"); v != "" {
		cfg.UserRoles = v
	}
}
