package config

import "time"

// Defaults for a gateway that answers like the reference device.
const (
	DefaultHost                    = "127.0.0.1"
	DefaultSSDPPort                = 1900
	DefaultFaultCode               = 401
	DefaultFaultDescription        = "Invalid Action"
	DefaultMaxBodySize       int64 = 10 << 20
	DefaultFriendlyName            = "Mock IGD"
	DefaultManufacturer            = "mockigd"
	DefaultModelName               = "Mock Internet Gateway Device"
	DefaultServerHeader            = "mockigd/1.0 UPnP/1.0"
)

// ServerConfiguration holds everything a gateway instance needs to start.
// Field tags name the YAML/JSON keys and the MOCKIGD_-prefixed
// environment variables that override them.
type ServerConfiguration struct {
	// Host is the address the HTTP server binds to.
	Host string `json:"host" yaml:"host" env:"HOST"`
	// HTTPPort is the control/description port. 0 picks a free port.
	HTTPPort int `json:"httpPort" yaml:"httpPort" env:"HTTP_PORT"`

	// SSDPEnabled starts the discovery responder.
	SSDPEnabled bool `json:"ssdpEnabled" yaml:"ssdpEnabled" env:"SSDP_ENABLED"`
	// SSDPPort is the discovery UDP port. 0 picks a free port.
	SSDPPort int `json:"ssdpPort" yaml:"ssdpPort" env:"SSDP_PORT"`
	// SSDPMulticast joins 239.255.255.250 on the discovery socket.
	SSDPMulticast bool `json:"ssdpMulticast" yaml:"ssdpMulticast" env:"SSDP_MULTICAST"`

	// DefaultFaultCode and DefaultFaultDescription answer calls to a known
	// action that no mock covers.
	DefaultFaultCode        int    `json:"defaultFaultCode" yaml:"defaultFaultCode" env:"DEFAULT_FAULT_CODE"`
	DefaultFaultDescription string `json:"defaultFaultDescription" yaml:"defaultFaultDescription" env:"DEFAULT_FAULT_DESCRIPTION"`

	// MaxLogEntries caps the request log. 0 keeps everything.
	MaxLogEntries int `json:"maxLogEntries" yaml:"maxLogEntries" env:"MAX_LOG_ENTRIES"`
	// MaxBodySize is the largest control payload read, in bytes.
	MaxBodySize int64 `json:"maxBodySize" yaml:"maxBodySize" env:"MAX_BODY_SIZE"`
	// ReadTimeout and WriteTimeout bound each HTTP exchange.
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout" env:"WRITE_TIMEOUT"`

	// Device description fields.
	FriendlyName string `json:"friendlyName" yaml:"friendlyName" env:"FRIENDLY_NAME"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer" env:"MANUFACTURER"`
	ModelName    string `json:"modelName" yaml:"modelName" env:"MODEL_NAME"`
	ServerHeader string `json:"serverHeader" yaml:"serverHeader" env:"SERVER_HEADER"`

	LogLevel  string `json:"logLevel" yaml:"logLevel" env:"LOG_LEVEL"`
	LogFormat string `json:"logFormat" yaml:"logFormat" env:"LOG_FORMAT"`
}

// DefaultServerConfiguration returns a configuration with sensible
// defaults: loopback, random HTTP port, discovery off.
func DefaultServerConfiguration() *ServerConfiguration {
	return &ServerConfiguration{
		Host:                    DefaultHost,
		SSDPPort:                DefaultSSDPPort,
		SSDPMulticast:           true,
		DefaultFaultCode:        DefaultFaultCode,
		DefaultFaultDescription: DefaultFaultDescription,
		MaxBodySize:             DefaultMaxBodySize,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
		FriendlyName:            DefaultFriendlyName,
		Manufacturer:            DefaultManufacturer,
		ModelName:               DefaultModelName,
		ServerHeader:            DefaultServerHeader,
		LogLevel:                "info",
		LogFormat:               "text",
	}
}
