package ports

import "overlayns/internal/types"

type ManifestPort interface {
	LoadManifest(path string) (types.Manifest, error)
}
