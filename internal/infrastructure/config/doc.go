// Package config loads and validates the Otodata bridge configuration.
//
// Configuration comes from three layers, later layers overriding earlier:
//
//  1. Hardcoded defaults — enough to run against a local anonymous broker
//  2. An optional YAML file (OTODATA_CONFIG, default configs/config.yaml)
//  3. Environment variables (OTODATA_MQTT_HOST, OTODATA_MQTT_PORT,
//     OTODATA_MQTT_USERNAME, OTODATA_MQTT_PASSWORD,
//     OTODATA_BRIDGE_AVAILABILITY_TOPIC, OTODATA_DISCOVERY_PREFIX,
//     OTODATA_HISTORY_ENABLED, OTODATA_HISTORY_TOKEN,
//     OTODATA_JOURNAL_ENABLED, OTODATA_JOURNAL_PATH)
//
// The file is optional: a containerised deployment typically configures the
// bridge entirely through environment variables. A set-but-unparsable
// numeric or boolean override fails Load rather than silently falling back
// to the default.
package config
