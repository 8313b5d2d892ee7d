package bundle

import (
	"github.com/minio/highwayhash"
)

// assetKey keys asset fingerprints; highwayhash requires 32 bytes
var assetKey = []byte("stitcher/assets/fingerprint/v1.0")

// Fingerprint returns a content fingerprint telling apart assets stored under the same hash name
func (d AssetData) Fingerprint() uint64 {
	return highwayhash.Sum64(d, assetKey)
}
