// Package config holds the settings of a mock gateway instance.
//
// Settings come from three layers, later ones winning:
//
//  1. DefaultServerConfiguration
//  2. an optional JSON or YAML file (LoadFile)
//  3. MOCKIGD_* environment variables (ApplyEnv)
//
// The command line applies its flags on top of that. Load runs the first
// three layers and Validate.
//
//	cfg, err := config.Load("gateway.yaml")
//	if err != nil {
//	    return err
//	}
//
// Example file:
//
//	httpPort: 5000
//	ssdpEnabled: true
//	defaultFaultCode: 401
//	defaultFaultDescription: Invalid Action
package config
