package stitch

import (
	"sync"
)

// assetSet tracks written asset hashes with their content fingerprint
type assetSet struct {
	mux          sync.Mutex
	fingerprints map[string]uint64
}

// add records hash; it returns false with the fingerprint mismatch flag when hash was already recorded
func (s *assetSet) add(hash string, fingerprint uint64) (added bool, conflict bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if prev, ok := s.fingerprints[hash]; ok {
		return false, prev != fingerprint
	}
	s.fingerprints[hash] = fingerprint
	return true, false
}

func newAssetSet() *assetSet {
	return &assetSet{fingerprints: make(map[string]uint64)}
}
