// Package enrich resolves an inbound caller to the dynamic variables
// and metadata that steer the live conversation.
package enrich

import (
	"io"
	"log"

	"github.com/voxkit/voxbridge/internal/vox"
)

// Directory looks a caller profile up by the calling number. This is
// the seam for a real identity or CRM service.
type Directory interface {
	Lookup(fromNumber string) (Profile, bool)
}

type Profile struct {
	DynamicVariables map[string]any
	Metadata         map[string]any
}

// StaticDirectory is an exact-match in-memory directory.
type StaticDirectory struct {
	profiles map[string]Profile
}

func NewStaticDirectory(profiles map[string]Profile) *StaticDirectory {
	if profiles == nil {
		profiles = make(map[string]Profile)
	}
	return &StaticDirectory{profiles: profiles}
}

// DefaultDirectory returns the built-in sample profiles.
func DefaultDirectory() *StaticDirectory {
	return NewStaticDirectory(map[string]Profile{
		"821012345678": {
			DynamicVariables: map[string]any{
				"user_name":    "김철수",
				"product_name": "아이폰 16 프로",
			},
			Metadata: map[string]any{"user_id": "user_kim_chul_su_123"},
		},
		"821087654321": {
			DynamicVariables: map[string]any{
				"user_name":       "손예진",
				"last_order_date": "2024-07-01",
			},
			Metadata: map[string]any{"user_id": "user_son_ye_jin_456"},
		},
	})
}

func (d *StaticDirectory) Lookup(fromNumber string) (Profile, bool) {
	profile, ok := d.profiles[fromNumber]
	return profile, ok
}

type Service struct {
	directory Directory
	logger    *log.Logger
}

func NewService(directory Directory, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{directory: directory, logger: logger}
}

// Enrich maps the caller to conversation context. Unknown numbers get
// the generic greeting name and empty metadata.
func (s *Service) Enrich(fromNumber, toNumber string) vox.InboundEnrichment {
	if profile, ok := s.directory.Lookup(fromNumber); ok {
		s.logger.Printf("inbound caller identified from=%s", fromNumber)
		return vox.InboundEnrichment{
			DynamicVariables: cloneMap(profile.DynamicVariables),
			Metadata:         cloneMap(profile.Metadata),
		}
	}

	s.logger.Printf("unknown inbound caller from=%s, using defaults", fromNumber)
	return vox.InboundEnrichment{
		DynamicVariables: map[string]any{"user_name": "고객님"},
		Metadata:         map[string]any{},
	}
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
