package birthdate

import (
	"strings"
	"testing"

	"github.com/mingpan/mingpan/internal/domain"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		y, m, d int
	}{
		{"1990-01-01", 1990, 1, 1},
		{"1990/1/1", 1990, 1, 1},
		{" 1990年1月1日 ", 1990, 1, 1},
		{"1985-07-23", 1985, 7, 23},
	}
	for _, c := range cases {
		y, m, d, err := Parse(c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.in, err)
		}
		if y != c.y || m != c.m || d != c.d {
			t.Fatalf("%q: got %d-%d-%d, want %d-%d-%d", c.in, y, m, d, c.y, c.m, c.d)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date"} {
		if _, _, _, err := Parse(in); !domain.IsKind(err, domain.KindInvalidInput) {
			t.Errorf("%q: expected invalid input, got %v", in, err)
		}
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(domain.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 23})
	if !strings.HasPrefix(got, "1990年1月1日 ") || !strings.HasSuffix(got, " 23時") {
		t.Fatalf("unexpected birth line %q", got)
	}
	if strings.Contains(got, "Monday") {
		t.Fatalf("weekday should be localized, got %q", got)
	}
}
