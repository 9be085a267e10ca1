package assets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Resolve returns ref unchanged when it is already hosted and uploads it
// otherwise. An empty ref stays empty.
func Resolve(ctx context.Context, up Uploader, ref string) (string, error) {
	if ref == "" || IsUploaded(ref) {
		return ref, nil
	}
	return up.Upload(ctx, ref)
}

// ResolveAll resolves every ref concurrently. The result has the same length
// and order as refs. The first failure cancels the remaining uploads and is
// returned; uploads that finished before it are still reflected in the
// result so a later attempt can reuse them.
func ResolveAll(ctx context.Context, up Uploader, refs []string) ([]string, error) {
	out := make([]string, len(refs))
	copy(out, refs)

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		if ref == "" || IsUploaded(ref) {
			continue
		}
		i, ref := i, ref
		g.Go(func() error {
			url, err := up.Upload(gctx, ref)
			if err != nil {
				return err
			}
			out[i] = url
			return nil
		})
	}

	err := g.Wait()
	return out, err
}
