// Package workload implements the recurring-payment traffic generator:
// validating activities against a node catalog and issuing SendPayment
// calls at each activity's configured cadence. Grounded on
// blast_simln_manager.rs's setup_simln/add_nodes/add_activity, reworked as
// a Go-native traffic generator instead of wrapping the sim-lib crate.
package workload

// NodeConnection describes one node's identity for activity resolution,
// matching the sim-ln SimParams.nodes document blast_model_manager.rs's
// get_sim_ln RPC returns.
type NodeConnection struct {
	ID      string `json:"id"`
	Alias   string `json:"alias"`
	PubKey  string `json:"pub_key"`
	Address string `json:"address"`
}

// SimParams is the JSON document a model's SimLn RPC response decodes to.
type SimParams struct {
	Nodes []NodeConnection `json:"nodes"`
}
