package keygen

import (
	"context"
	"errors"
	"fmt"

	"github.com/taurusgroup/rsa-keygen/pkg/pool"
	"github.com/taurusgroup/rsa-keygen/pkg/rsa"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCount is returned by GenerateBatch for a negative count.
var ErrInvalidCount = errors.New("keygen: negative key count")

// GenerateBatch generates count independent key pairs of the same size concurrently.
//
// At most limit generations run at the same time, limit <= 0 means no limit.
// The randomness source is shared through a pool.LockedReader.
// The first error cancels the remaining generations, and no key is returned.
func (g *Generator) GenerateBatch(ctx context.Context, bits, count, limit int) ([]*rsa.KeyPair, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	shared := *g
	shared.Rand = pool.NewLockedReader(g.reader())

	keys := make([]*rsa.KeyPair, count)
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i := 0; i < count; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			kp, err := shared.Generate(bits)
			if err != nil {
				return err
			}
			keys[i] = kp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
