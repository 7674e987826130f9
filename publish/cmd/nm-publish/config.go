package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/nearmint/protocol/publish"
	"github.com/nearmint/protocol/publish/contracts/nearmintnft"
)

type config struct {
	ConfigFile  string
	Owner       string
	TokenName   string
	TokenSymbol string
	BaseURI     string
	Tool        string
	Account     string
	Network     string
	ClassHash   string
	Output      string
}

// fileConfig is the on-disk form read by --config. Either YAML or JSON.
type fileConfig struct {
	Owner       string `json:"owner,omitempty"`
	TokenName   string `json:"tokenName,omitempty"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`
	BaseURI     string `json:"baseURI,omitempty"`
	Tool        string `json:"tool,omitempty"`
	Account     string `json:"account,omitempty"`
	Network     string `json:"network,omitempty"`
	ClassHash   string `json:"classHash,omitempty"`
}

func defaultConfig() *config {
	return &config{
		ConfigFile:  envOr("NM_PUBLISH_CONFIG", ""),
		Owner:       envOr("OWNER", nearmintnft.DefaultOwner),
		TokenName:   envOr("TOKEN_NAME", nearmintnft.DefaultName),
		TokenSymbol: envOr("TOKEN_SYMBOL", nearmintnft.DefaultSymbol),
		BaseURI:     envOr("BASE_URI", nearmintnft.DefaultBaseURI),
		Tool:        envOr("DEPLOY_TOOL", publish.DefaultTool),
		Account:     envOr("ACCOUNT", "my_mainnet"),
		Network:     envOr("NETWORK", "mainnet"),
		ClassHash:   envOr("CLASS_HASH", nearmintnft.ClassHash),
		Output:      envOr("OUTPUT", "text"),
	}
}

func (c *config) bindFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML or JSON file with deployment parameters")
	fs.StringVar(&c.Owner, "owner", c.Owner, "owner address passed as the first constructor argument")
	fs.StringVar(&c.TokenName, "token-name", c.TokenName, "token name")
	fs.StringVar(&c.TokenSymbol, "token-symbol", c.TokenSymbol, "token symbol")
	fs.StringVar(&c.BaseURI, "base-uri", c.BaseURI, "token metadata base URI")
	fs.StringVar(&c.Tool, "tool", c.Tool, "deploy tool binary")
	fs.StringVar(&c.Account, "account", c.Account, "deploy tool account name")
	fs.StringVar(&c.Network, "network", c.Network, "network to deploy to")
	fs.StringVar(&c.ClassHash, "class-hash", c.ClassHash, "declared contract class hash")
}

// resolve applies the --config file under any explicitly set flags and checks
// required values. Precedence: flag, file, env, default.
func (c *config) resolve(cmd *cobra.Command) error {
	if c.ConfigFile != "" {
		fc, err := loadConfigFile(c.ConfigFile)
		if err != nil {
			return err
		}
		fs := cmd.Flags()
		for flagName, pair := range map[string]struct {
			dst *string
			val string
		}{
			"owner":        {&c.Owner, fc.Owner},
			"token-name":   {&c.TokenName, fc.TokenName},
			"token-symbol": {&c.TokenSymbol, fc.TokenSymbol},
			"base-uri":     {&c.BaseURI, fc.BaseURI},
			"tool":         {&c.Tool, fc.Tool},
			"account":      {&c.Account, fc.Account},
			"network":      {&c.Network, fc.Network},
			"class-hash":   {&c.ClassHash, fc.ClassHash},
		} {
			if pair.val != "" && !fs.Changed(flagName) {
				*pair.dst = pair.val
			}
		}
	}

	if strings.TrimSpace(c.Owner) == "" {
		return errors.New("owner is required")
	}
	klog.V(4).Infof("Resolved config: %+v", *c)
	return nil
}

func (c *config) constructorArgs() nearmintnft.ConstructorArgs {
	return nearmintnft.ConstructorArgs{
		Owner:   c.Owner,
		Name:    c.TokenName,
		Symbol:  c.TokenSymbol,
		BaseURI: c.BaseURI,
	}
}

func loadConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
