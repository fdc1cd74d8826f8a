/*
classify.go - Vehicle ownership classification

PURPOSE:
  Pure lookup from vehicle number to ownership class. Every routing
  decision downstream (memo fan-out, vehicle expenses, fuel allocation)
  depends on this answer, so the rule is kept deliberately small:
  exact-match against the registered vehicle master data.

CONSERVATIVE DEFAULT:
  An unregistered vehicle classifies as Market. Market handling creates
  a supplier-payable entry that must not be silently dropped; treating
  an unknown vehicle as Own would swallow a real payable.

MASTER DATA DRIFT:
  The registry may change between calls (user corrects vehicle master
  data). Derivations classify at event time; Engine.RecomputeAll
  reconciles previously derived entries against the current registry.

SEE ALSO:
  - rules.go: Consumers of Classify
  - engine.go: RecomputeAll
*/
package books

import (
	"sort"
	"sync"
)

// Ownership is the vehicle's class: company fleet or subcontracted.
type Ownership string

const (
	OwnershipOwn    Ownership = "own"
	OwnershipMarket Ownership = "market"
)

// =============================================================================
// VEHICLE REGISTRY - Master data lookup table
// =============================================================================

// VehicleRegistry holds the vehicle master data, keyed by exact vehicle
// number. Safe for concurrent readers.
type VehicleRegistry struct {
	mu       sync.RWMutex
	vehicles map[string]Vehicle
}

func NewVehicleRegistry() *VehicleRegistry {
	return &VehicleRegistry{vehicles: make(map[string]Vehicle)}
}

// Put registers or replaces a vehicle record.
func (r *VehicleRegistry) Put(v Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[v.VehicleNo] = v
}

// Remove deletes a vehicle record. Removing is how an owned vehicle
// falls back to the Market default.
func (r *VehicleRegistry) Remove(vehicleNo string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, vehicleNo)
}

// Get returns the vehicle record, if registered.
func (r *VehicleRegistry) Get(vehicleNo string) (Vehicle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[vehicleNo]
	return v, ok
}

// List returns all registered vehicles, ordered by vehicle number.
func (r *VehicleRegistry) List() []Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleNo < out[j].VehicleNo })
	return out
}

// Classify returns the ownership class for a vehicle number.
// Unregistered vehicles classify as Market. No side effects.
func (r *VehicleRegistry) Classify(vehicleNo string) Ownership {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.vehicles[vehicleNo]; ok && v.Ownership == OwnershipOwn {
		return OwnershipOwn
	}
	return OwnershipMarket
}
