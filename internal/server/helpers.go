package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Defaults applied to job configs, mirroring the run command's flag defaults.
const (
	defaultN                  = 8
	defaultNumParticles       = 100
	defaultInertiaWeight      = 0.7
	defaultCognitiveParameter = 0.8
	defaultSocialParameter    = 0.9
)

// applyConfigDefaults fills in zero-valued fields of a job config.
// An omitted evaluation budget defaults to 1000 rounds over the swarm.
func applyConfigDefaults(config *JobConfig) {
	if config.N == 0 {
		config.N = defaultN
	}
	if config.NumParticles == 0 {
		config.NumParticles = defaultNumParticles
	}
	if config.InertiaWeight == 0 {
		config.InertiaWeight = defaultInertiaWeight
	}
	if config.CognitiveParameter == 0 {
		config.CognitiveParameter = defaultCognitiveParameter
	}
	if config.SocialParameter == 0 {
		config.SocialParameter = defaultSocialParameter
	}
	if config.Evaluations == 0 {
		config.Evaluations = 1000 * config.NumParticles
	}
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
