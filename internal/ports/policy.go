package ports

import (
	"context"

	"overlayns/internal/types"
)

type ShadowPolicyPort interface {
	Mode() types.ShadowMode
	Check(ctx context.Context, records []types.ShadowRecord) error
}
