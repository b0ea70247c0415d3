// Package config loads mkdom.json.
//
// The file lives at the project root. Every field is optional:
//
//	{
//	  "host": {"forceClassAttr": false},
//	  "browser": {"headless": true, "timeout": "30s"},
//	  "server": {"host": "localhost", "port": 7070},
//	  "storage": {
//	    "dir": "pages",
//	    "s3": {"region": "eu-west-1", "endpoint": "", "pathStyle": false}
//	  },
//	  "metrics": {"enabled": true, "namespace": "mkdom"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    cfg = config.New()
//	}
//	addr := cfg.ServerAddress()
package config
