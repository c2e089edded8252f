package geocoding

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Static implements the interface.
var _ driven.Geocoder = (*Static)(nil)

type landmark struct {
	name    string
	lat     float64
	lng     float64
	aliases []string
}

var landmarks = []landmark{
	{"Times Square, New York", 40.7580, -73.9855, []string{"times square", "times sq"}},
	{"JFK Airport, New York", 40.6413, -73.7781, []string{"jfk", "john f kennedy airport", "kennedy airport"}},
	{"LaGuardia Airport, New York", 40.7769, -73.8740, []string{"laguardia", "la guardia", "lga"}},
	{"Newark Liberty Airport, New Jersey", 40.6895, -74.1745, []string{"newark airport", "ewr", "newark"}},
	{"Central Park, New York", 40.7829, -73.9654, []string{"central park"}},
	{"Empire State Building, New York", 40.7484, -73.9857, []string{"empire state"}},
	{"Grand Central Terminal, New York", 40.7527, -73.9772, []string{"grand central"}},
	{"Penn Station, New York", 40.7506, -73.9935, []string{"penn station", "penn"}},
	{"Rockefeller Center, New York", 40.7587, -73.9787, []string{"rockefeller", "rock center"}},
	{"Brooklyn Bridge, New York", 40.7061, -73.9969, []string{"brooklyn bridge"}},
	{"Wall Street, New York", 40.7060, -74.0086, []string{"wall street", "wall st", "financial district"}},
	{"Statue of Liberty, New York", 40.6892, -74.0445, []string{"statue of liberty", "liberty island"}},
	{"SoHo, New York", 40.7233, -74.0030, []string{"soho"}},
	{"Greenwich Village, New York", 40.7336, -74.0027, []string{"greenwich village", "west village"}},
	{"East Village, New York", 40.7265, -73.9815, []string{"east village"}},
	{"Chelsea, New York", 40.7465, -74.0014, []string{"chelsea"}},
	{"Tribeca, New York", 40.7163, -74.0086, []string{"tribeca"}},
	{"Union Square, New York", 40.7359, -73.9911, []string{"union square", "union sq"}},
	{"Williamsburg, Brooklyn", 40.7081, -73.9571, []string{"williamsburg"}},
	{"Midtown, New York", 40.7549, -73.9840, []string{"midtown"}},
	{"Harlem, New York", 40.8116, -73.9465, []string{"harlem"}},
}

type alias struct {
	text string
	idx  int
}

// Static resolves a fixed set of New York landmarks without network access.
// Literal "lat,lng" pairs are accepted as well.
type Static struct {
	aliases []alias
}

// NewStatic creates the offline geocoder.
func NewStatic() *Static {
	s := &Static{}
	for i, l := range landmarks {
		for _, a := range l.aliases {
			s.aliases = append(s.aliases, alias{text: a, idx: i})
		}
	}
	// Longest alias first so "newark airport" wins over "newark".
	sort.SliceStable(s.aliases, func(i, j int) bool {
		return len(s.aliases[i].text) > len(s.aliases[j].text)
	})
	return s
}

// Geocode resolves place against the landmark table.
func (s *Static) Geocode(ctx context.Context, place string) (domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeoPoint{}, err
	}
	if pt, ok := ParseCoordinates(place); ok {
		return pt, nil
	}

	key := normalizePlace(place)
	if key == "" {
		return domain.GeoPoint{}, fmt.Errorf("%w: empty place", domain.ErrGeocodeFailed)
	}
	for _, a := range s.aliases {
		if containsWord(key, a.text) {
			l := landmarks[a.idx]
			return domain.GeoPoint{Lat: l.lat, Lng: l.lng, Name: l.name}, nil
		}
	}
	return domain.GeoPoint{}, fmt.Errorf("%w: unknown place %q", domain.ErrGeocodeFailed, place)
}

// ParseCoordinates accepts "40.7580,-73.9855" (spaces allowed) and returns
// the point when both parts are valid coordinates.
func ParseCoordinates(s string) (domain.GeoPoint, bool) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, false
	}
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	ln, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil || la < -90 || la > 90 || ln < -180 || ln > 180 {
		return domain.GeoPoint{}, false
	}
	return domain.GeoPoint{Lat: la, Lng: ln, Name: strings.TrimSpace(s)}, true
}

// normalizePlace lowercases place and collapses punctuation to spaces.
func normalizePlace(place string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(place) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'' || r == '.':
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsWord reports whether phrase occurs in s on word boundaries.
func containsWord(s, phrase string) bool {
	padded := " " + s + " "
	return strings.Contains(padded, " "+phrase+" ")
}
