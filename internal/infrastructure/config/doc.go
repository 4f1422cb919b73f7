// Package config provides configuration loading for Hearth Core.
//
// Configuration is read from a YAML file and can be overridden with
// HEARTH_* environment variables. It covers the hub connection (host,
// port, TLS, access token), the registry refresh interval, logging, and
// the static per-area dashboard table that names each area's sensor
// entities and target temperature unit.
//
// # Example
//
//	hub:
//	  host: "homeassistant.local"
//	  port: 8123
//	  tls: false
//	sync:
//	  refresh_interval: 600
//	logging:
//	  level: "info"
//	  format: "json"
//	areas:
//	  - id: "office"
//	    temperature_entity: "sensor.office_temperature"
//	    humidity_entity: "sensor.office_humidity"
//	    carbon_dioxide_entity: "sensor.office_co2"
//	    temperature_unit: "°C"
//
// The access token should never live in the file; set HEARTH_HUB_TOKEN
// instead.
package config
