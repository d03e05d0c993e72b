package config

import "context"

// MultiLoader runs several format loaders over the same paths and
// concatenates their results in loader order.
type MultiLoader []Loader

func (m MultiLoader) Load(ctx context.Context, paths ...string) ([]*Profile, error) {
	var all []*Profile
	for _, l := range m {
		found, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	return all, nil
}
