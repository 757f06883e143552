package registry

import (
	"strings"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// seasonCovers is the fixed per-season pool a repaired or new trip draws its
// cover image from.
var seasonCovers = map[trip.Season][]string{
	trip.Spring: {
		"https://images.unsplash.com/photo-1522383225653-ed111181a951?w=800",
		"https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=800",
		"https://images.unsplash.com/photo-1490806843957-31f4c9a91c65?w=800",
	},
	trip.Summer: {
		"https://images.unsplash.com/photo-1558862107-d49ef2a04d72?w=800",
		"https://images.unsplash.com/photo-1505069446780-4ef442b5207f?w=800",
		"https://images.unsplash.com/photo-1526481280693-3bfa7568e0f3?w=800",
	},
	trip.Autumn: {
		"https://images.unsplash.com/photo-1478436127897-769e1b3f0f36?w=800",
		"https://images.unsplash.com/photo-1504198453319-5ce911bafcde?w=800",
		"https://images.unsplash.com/photo-1443890923422-7819ed4101c0?w=800",
	},
	trip.Winter: {
		"https://images.unsplash.com/photo-1548777123-e216912df7d8?w=800",
		"https://images.unsplash.com/photo-1551582045-6ec9c11d8697?w=800",
		"https://images.unsplash.com/photo-1519681393784-d120267933ba?w=800",
	},
}

// unreliableHosts are image hosts that used to serve random covers but no
// longer resolve reliably; summaries pointing at them get repaired.
var unreliableHosts = []string{
	"source.unsplash.com",
	"loremflickr.com",
}

func (r *Registry) pickCover(season trip.Season) string {
	pool := seasonCovers[season]
	if len(pool) == 0 {
		pool = seasonCovers[trip.Spring]
	}
	return pool[r.Rand.Intn(len(pool))]
}

// healCovers assigns a fresh cover to any summary whose image is missing or
// points at an unreliable host. Returns true when something was repaired so
// the caller can avoid needless writes.
func (r *Registry) healCovers(summaries []trip.Summary) bool {
	changed := false
	for i := range summaries {
		if coverUsable(summaries[i].CoverImage) {
			continue
		}
		summaries[i].CoverImage = r.pickCover(summaries[i].Season)
		changed = true
	}
	return changed
}

func coverUsable(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	for _, host := range unreliableHosts {
		if strings.Contains(url, host) {
			return false
		}
	}
	return true
}
