package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookups(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		key  string
		want string
	}{
		{"known test", TestName, "Kibud_Av_VaEm", "כיבוד אב ואם"},
		{"unknown test falls back", TestName, "Sample_Test", "Sample_Test"},
		{"known activity", ActivityType, "discussion", "דיון"},
		{"unknown activity falls back", ActivityType, "workshop", "workshop"},
		{"known age group", AgeGroup, "teen", "נוער (14-16)"},
		{"empty key", AgeGroup, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.key))
		})
	}
}
