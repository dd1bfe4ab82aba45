package cache

import (
	"context"

	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/ports"
)

// CachedScheduleSource is a cache-aside decorator over a ScheduleSource.
// Cache failures degrade to a direct fetch; they never fail the read.
type CachedScheduleSource struct {
	src   ports.ScheduleSource
	cache ports.ScheduleCache
}

func NewCachedScheduleSource(src ports.ScheduleSource, cache ports.ScheduleCache) *CachedScheduleSource {
	return &CachedScheduleSource{src: src, cache: cache}
}

func (s *CachedScheduleSource) FetchLatest(ctx context.Context) (ports.RawScheduleDocument, error) {
	doc, ok, err := s.cache.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("schedule cache read failed")
	} else if ok {
		return doc, nil
	}

	doc, err = s.src.FetchLatest(ctx)
	if err != nil {
		return ports.RawScheduleDocument{}, err
	}

	if err := s.cache.Set(ctx, doc); err != nil {
		logrus.WithError(err).Warn("schedule cache refresh failed")
	}
	return doc, nil
}
