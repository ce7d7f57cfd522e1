package workload

import "fmt"

// Activity describes one recurring payment flow, matching
// BlastSimLnManager::add_activity's field set in blast_simln_manager.rs.
// Source/Destination may be a node alias or a raw public key, resolved
// during Setup.
type Activity struct {
	Source       string
	Destination  string
	StartSecs    uint64
	Count        *uint64 // nil means run indefinitely
	IntervalSecs uint64
	AmountMsat   int64
}

// resolved pairs an Activity with its source node id and destination public
// key, once validated against the node catalog.
type resolved struct {
	Activity
	SourceNodeID string
	DestPubKey   string
}

// resolve validates one activity against the alias/pubkey maps built in
// Setup, matching setup_simln's per-activity validation: both source and
// destination must resolve to a node already known to the pool, by alias
// or by public key. A destination that matches neither map fails with
// ErrUnknownActivityEndpoint, the Go analogue of setup_simln's bail! on an
// alias miss (add_activity always constructs NodeId::Alias, so the
// pubkey-fallback branch of the original is unreachable from this entry
// point and is not reproduced here).
func resolve(a Activity, byAlias, byPubKey map[string]NodeConnection) (resolved, error) {
	src, ok := byAlias[a.Source]
	if !ok {
		src, ok = byPubKey[a.Source]
	}
	if !ok {
		return resolved{}, fmt.Errorf("%w: source %q", ErrUnresolvedSource, a.Source)
	}

	if dst, ok := byAlias[a.Destination]; ok {
		return resolved{Activity: a, SourceNodeID: src.ID, DestPubKey: dst.PubKey}, nil
	}
	if dst, ok := byPubKey[a.Destination]; ok {
		return resolved{Activity: a, SourceNodeID: src.ID, DestPubKey: dst.PubKey}, nil
	}
	return resolved{}, fmt.Errorf("%w: %q", ErrUnknownActivityEndpoint, a.Destination)
}
