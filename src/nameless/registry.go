package nameless

import (
	"log"
	"net/http"
	"sort"
)

// Registry holds the known adapters sorted from most to least recent. It is
// populated once at startup; an empty registry is unusable and fatal.
type Registry struct {
	adapters []Adapter
}

// NewRegistry builds the static adapter table. New site versions get a new
// entry here instead of a dynamically loaded module.
func NewRegistry(httpClient *http.Client) *Registry {
	r := &Registry{}
	r.register(newV21(httpClient))
	if len(r.adapters) == 0 {
		log.Fatalf("nameless: no api adapters registered")
	}
	sort.Slice(r.adapters, func(i, j int) bool {
		return r.adapters[i].MinVersion() > r.adapters[j].MinVersion()
	})
	return r
}

func (r *Registry) register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Latest returns the adapter with the highest minimum version. It is used to
// probe the site info endpoint before the version is known.
func (r *Registry) Latest() Adapter {
	return r.adapters[0]
}

// Select picks the adapter whose version range covers the given version.
// When nothing matches, the most recent adapter is used as a best guess so an
// unrecognized newer site keeps working instead of blocking everything.
func (r *Registry) Select(version int) Adapter {
	for _, a := range r.adapters {
		if a.MinVersion() <= version && (a.MaxVersion() == 0 || version <= a.MaxVersion()) {
			return a
		}
	}
	log.Printf("nameless: no api adapter covers version %d, falling back to latest", version)
	return r.adapters[0]
}
