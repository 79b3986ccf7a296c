package watchlist

// TrackedEntity is one watched wallet with its display metadata.
type TrackedEntity struct {
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// Resolver answers membership queries against an immutable watch-list
// snapshot. Lookups are exact byte-for-byte address matches; no case or
// whitespace normalization is applied.
type Resolver struct {
	byAddress map[string]TrackedEntity
}

// NewResolver builds a resolver from a list of entities. When the list
// carries duplicate addresses the last occurrence wins.
func NewResolver(entities []TrackedEntity) *Resolver {
	byAddress := make(map[string]TrackedEntity, len(entities))
	for _, e := range entities {
		byAddress[e.Address] = e
	}
	return &Resolver{byAddress: byAddress}
}

// Resolve returns the entity tracked under the given address.
func (r *Resolver) Resolve(address string) (TrackedEntity, bool) {
	entity, ok := r.byAddress[address]
	return entity, ok
}

// Len reports the number of tracked entities.
func (r *Resolver) Len() int {
	return len(r.byAddress)
}
