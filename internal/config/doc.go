// Package config provides the configuration system for u8scan.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by the CLI)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← U8SCAN_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(loader.DefaultFS(), "u8scan.toml", loader.NewEnvLoader(loader.DefaultEnvPrefix))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Scan.Policy)
//
// A TOML file looks like:
//
//	[scan]
//	policy = "resync"
//	maxDiagnostics = 100
//
//	[output]
//	format = "text"
//	color = "auto"
//
//	[watch]
//	debounce = "200ms"
//	ignore = [".git/", "*.png"]
package config
