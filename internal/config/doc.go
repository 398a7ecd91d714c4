// Package config provides configuration management for stackctl.
//
// This package implements a layered configuration system that allows users to
// customize the managed service stack through YAML files. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Describes the standard backend stack (db, cache, gateway, app)
//     - Ensures stackctl works out-of-the-box against a dev namespace
//
//  2. User Configuration (~/.config/stackctl/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.stackctl/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share the stack definition via version control
//
// The target namespace can additionally be overridden through the
// STACKCTL_NAMESPACE environment variable, which wins over every file layer.
//
// # Configuration Structure
//
//	namespace: dev
//	defaults:
//	  probeTimeout: 60s
//	  probeInterval: 2s
//	  startTimeout: 120s
//	services:
//	  - name: "db"
//	    priorityTier: 1
//	    healthCheck:
//	      kind: database
//	      target: "localhost:5432"
//	  - name: "gateway"
//	    priorityTier: 2
//	    dependsOn: ["db", "cache"]
//	    healthCheck:
//	      kind: http
//	      target: "http://localhost:8080/healthz"
//
// Services are merged across layers by name: a service defined in the project
// layer completely replaces the service of the same name from earlier layers.
package config
