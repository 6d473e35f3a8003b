package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Groceries", "groceries"},
		{"  Toys  ", "toys"},
		{"ELECTRONICS", "electronics"},
		{"home decor", "home decor"},
		{"①widgets", "1widgets"}, // NFKC folds circled digits
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	for _, s := range []string{"Groceries", "  Mixed Case  ", "café", "①widgets"} {
		once := NormalizeCategory(s)
		if twice := NormalizeCategory(once); twice != once {
			t.Errorf("normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{108.192, 108.19},
		{90.166, 90.17},
		{49.999, 50},
		{-3.456, -3.46},
		{1.2, 1.2},
		{100, 100},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtractAPIKey(t *testing.T) {
	e := echo.New()
	cases := []struct {
		name   string
		header string
		want   string
		isErr  bool
	}{
		{name: "bearer", header: "Bearer secret123", want: "secret123"},
		{name: "lowercase scheme", header: "bearer secret123", want: "secret123"},
		{name: "missing", header: "", isErr: true},
		{name: "wrong scheme", header: "Basic abc", isErr: true},
		{name: "no token", header: "Bearer", isErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			got, err := ExtractAPIKey(c)
			if tc.isErr {
				if err == nil {
					t.Fatalf("expected error, got key %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STOCKCAST_TEST_ENV", "set")
	if got := GetEnv("STOCKCAST_TEST_ENV", "fallback"); got != "set" {
		t.Errorf("got %q, want set", got)
	}
	if got := GetEnv("STOCKCAST_TEST_ENV_ABSENT", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestDerefString(t *testing.T) {
	s := "toys"
	if got := DerefString(&s); got != "toys" {
		t.Errorf("got %q, want toys", got)
	}
	if got := DerefString(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
