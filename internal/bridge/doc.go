// Package bridge is the controller at the centre of ha-otodata: it
// consumes raw BLE advertisements, runs them through the Otodata decoder,
// maintains the address-to-serial registry and the announced-serial set,
// and emits MQTT publications.
//
// # State machine
//
// Per tracked serial: unannounced → announced (terminal for the process
// lifetime). On the transition, two retained Home Assistant discovery
// configs are published — the propane level sensor and the signal-strength
// diagnostic — both referencing the bridge availability topic.
//
// Per advertisement:
//
//	raw advertisement ─▶ Decode ─▶ Identity  ─▶ Record, maybe announce
//	                            └▶ Reading   ─▶ Lookup, publish state or drop
//	                            └▶ (nothing) ─▶ ignore
//
// # Failure semantics
//
// There are no retries here. A dropped or malformed advertisement is
// superseded by the tank's next periodic broadcast, so transient misses
// self-heal via retransmission. Decode errors and publish failures are
// logged and never terminate the processing loop.
package bridge
