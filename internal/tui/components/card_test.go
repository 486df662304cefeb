package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

func TestTruncateCardLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		runes int
	}{
		{"short ascii", "Pilot order", "Pilot order", 11},
		{"exact limit", strings.Repeat("a", 26), strings.Repeat("a", 26), 26},
		{"over limit ascii", strings.Repeat("a", 30), strings.Repeat("a", 25) + "…", 26},
		{
			"turkish over limit",
			"Öğrenci yönetim sistemi güncellemesi",
			"Öğrenci yönetim sistemi g…",
			26,
		},
		{
			"multibyte at cut point",
			strings.Repeat("ş", 30),
			strings.Repeat("ş", 25) + "…",
			26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateCardLine(tt.in)
			if got != tt.want {
				t.Errorf("truncateCardLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateCardLine(%q) produced invalid UTF-8", tt.in)
			}
			if n := utf8.RuneCountInString(got); n != tt.runes {
				t.Errorf("truncateCardLine(%q) has %d runes, want %d", tt.in, n, tt.runes)
			}
		})
	}
}

func TestRenderCardTurkishTitle(t *testing.T) {
	deal := &models.Deal{
		ID:             1,
		Title:          "İstanbul Büyükşehir Belediyesi çerçeve anlaşması",
		Status:         "Lead",
		Probability:    40,
		EstimatedValue: 12500,
		AccountID:      types.AccountID(7),
		AccountTitle:   "Güneş Enerji Sistemleri Sanayi ve Ticaret A.Ş.",
	}

	out := RenderCard(deal, false, false)
	if !utf8.ValidString(out) {
		t.Fatal("rendered card contains invalid UTF-8")
	}
	if strings.ContainsRune(out, utf8.RuneError) {
		t.Fatal("rendered card contains replacement characters")
	}
}
