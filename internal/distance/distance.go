// Package distance provides area-to-area road distances for the delivery
// ranking. The built-in table covers the Sri Lankan metro areas the service
// operates in; anything outside the table falls back to a conservative
// default so unknown areas rank last rather than erroring.
package distance

import (
	"lankagrocer/backend/internal/domain"
)

// DefaultKm is returned for empty, unknown, or unmapped area pairs.
const DefaultKm = 60.0

// Table answers symmetric area distance lookups in kilometres.
type Table interface {
	DistanceKm(a string, b string) float64
}

// SparseTable stores one entry per unordered area pair, keyed "A|B".
type SparseTable struct {
	pairs map[string]float64
}

func NewSparseTable(pairs map[string]float64) *SparseTable {
	copied := make(map[string]float64, len(pairs))
	for key, km := range pairs {
		copied[key] = km
	}
	return &SparseTable{pairs: copied}
}

func (t *SparseTable) DistanceKm(a string, b string) float64 {
	if a == "" || b == "" {
		return DefaultKm
	}
	if a == b {
		return 0
	}
	if km, ok := t.pairs[a+"|"+b]; ok {
		return km
	}
	if km, ok := t.pairs[b+"|"+a]; ok {
		return km
	}
	return DefaultKm
}

// Default returns the built-in metro table.
func Default() *SparseTable {
	return NewSparseTable(metroPairs)
}

// Areas lists the served areas with postal codes, in display order.
func Areas() []domain.Area {
	result := make([]domain.Area, len(servedAreas))
	copy(result, servedAreas)
	return result
}

// Served reports whether an area is in the delivery zone.
func Served(area string) bool {
	for _, a := range servedAreas {
		if a.Name == area {
			return true
		}
	}
	return false
}

var servedAreas = []domain.Area{
	{Name: "Colombo 1", PostalCode: "00100"},
	{Name: "Colombo 2", PostalCode: "00200"},
	{Name: "Colombo 3", PostalCode: "00300"},
	{Name: "Colombo 4", PostalCode: "00400"},
	{Name: "Colombo 5", PostalCode: "00500"},
	{Name: "Colombo 6", PostalCode: "00600"},
	{Name: "Colombo 7", PostalCode: "00700"},
	{Name: "Colombo 10", PostalCode: "01000"},
	{Name: "Colombo 12", PostalCode: "01200"},
	{Name: "Colombo 15", PostalCode: "01500"},
	{Name: "Nugegoda", PostalCode: "10250"},
	{Name: "Dehiwala", PostalCode: "10350"},
	{Name: "Ratmalana", PostalCode: "10390"},
	{Name: "Moratuwa", PostalCode: "10400"},
	{Name: "Gampaha", PostalCode: "11000"},
	{Name: "Negombo", PostalCode: "11500"},
	{Name: "Kandy", PostalCode: "20000"},
	{Name: "Galle", PostalCode: "80000"},
}

// metroPairs holds road distances in km between served areas. Pairs beyond
// practical same-day delivery range are deliberately absent and resolve to
// DefaultKm.
var metroPairs = map[string]float64{
	"Colombo 1|Colombo 2":  1.5,
	"Colombo 1|Colombo 3":  2,
	"Colombo 1|Colombo 4":  3,
	"Colombo 1|Colombo 5":  4,
	"Colombo 1|Colombo 6":  5,
	"Colombo 1|Colombo 7":  2.5,
	"Colombo 1|Colombo 10": 3,
	"Colombo 1|Colombo 12": 2,
	"Colombo 1|Colombo 15": 4.5,
	"Colombo 1|Nugegoda":   9,
	"Colombo 1|Dehiwala":   8,
	"Colombo 1|Ratmalana":  12,
	"Colombo 1|Moratuwa":   14,
	"Colombo 1|Gampaha":    30,
	"Colombo 1|Negombo":    37,
	"Colombo 1|Kandy":      115,
	"Colombo 1|Galle":      116,
	"Colombo 1|Matara":     158,
	"Colombo 1|Kurunegala": 93,
	"Colombo 2|Colombo 3":  1.5,
	"Colombo 2|Colombo 4":  2.5,
	"Colombo 2|Colombo 5":  3.5,
	"Colombo 2|Colombo 6":  4.5,
	"Colombo 2|Colombo 7":  2,
	"Colombo 2|Colombo 10": 2.5,
	"Colombo 2|Colombo 12": 1.5,
	"Colombo 2|Colombo 15": 4,
	"Colombo 2|Nugegoda":   9.5,
	"Colombo 2|Dehiwala":   8.5,
	"Colombo 2|Moratuwa":   14.5,
	"Colombo 2|Gampaha":    31,
	"Colombo 2|Negombo":    38,
	"Colombo 3|Colombo 4":  2,
	"Colombo 3|Colombo 5":  3,
	"Colombo 3|Colombo 6":  4,
	"Colombo 3|Colombo 7":  2,
	"Colombo 3|Colombo 10": 2.5,
	"Colombo 3|Colombo 12": 1.5,
	"Colombo 3|Colombo 15": 4,
	"Colombo 3|Nugegoda":   8.5,
	"Colombo 3|Dehiwala":   7.5,
	"Colombo 3|Ratmalana":  11.5,
	"Colombo 3|Moratuwa":   13.5,
	"Colombo 3|Gampaha":    29,
	"Colombo 3|Negombo":    36,
	"Colombo 3|Kandy":      113,
	"Colombo 3|Galle":      114,
	"Colombo 4|Colombo 5":  2,
	"Colombo 4|Colombo 6":  3,
	"Colombo 4|Colombo 7":  2.5,
	"Colombo 4|Colombo 10": 3.5,
	"Colombo 4|Nugegoda":   7,
	"Colombo 4|Dehiwala":   6,
	"Colombo 4|Moratuwa":   12,
	"Colombo 4|Gampaha":    31,
	"Colombo 4|Negombo":    38,
	"Colombo 5|Colombo 6":  2,
	"Colombo 5|Colombo 7":  3,
	"Colombo 5|Colombo 10": 4,
	"Colombo 5|Nugegoda":   5,
	"Colombo 5|Dehiwala":   5.5,
	"Colombo 5|Ratmalana":  9,
	"Colombo 5|Moratuwa":   11,
	"Colombo 5|Gampaha":    32,
	"Colombo 5|Negombo":    39,
	"Colombo 6|Colombo 7":  4,
	"Colombo 6|Nugegoda":   4,
	"Colombo 6|Dehiwala":   3.5,
	"Colombo 6|Moratuwa":   9,
	"Colombo 6|Gampaha":    33,
	"Colombo 7|Colombo 10": 2,
	"Colombo 7|Colombo 12": 3,
	"Colombo 7|Nugegoda":   8,
	"Colombo 7|Dehiwala":   7,
	"Colombo 7|Moratuwa":   13,
	"Colombo 7|Gampaha":    30,
	"Colombo 7|Negombo":    37,
	"Colombo 10|Colombo 12": 1.5,
	"Colombo 10|Nugegoda":   9,
	"Colombo 10|Dehiwala":   8,
	"Colombo 10|Gampaha":    28,
	"Colombo 10|Negombo":    35,
	"Colombo 12|Nugegoda":   10,
	"Colombo 12|Negombo":    36,
	"Colombo 15|Negombo":    25,
	"Colombo 15|Gampaha":    22,
	"Nugegoda|Dehiwala":     4,
	"Nugegoda|Ratmalana":    7,
	"Nugegoda|Moratuwa":     9,
	"Nugegoda|Gampaha":      35,
	"Nugegoda|Kandy":        108,
	"Dehiwala|Ratmalana":    4,
	"Dehiwala|Moratuwa":     6,
	"Dehiwala|Gampaha":      36,
	"Ratmalana|Moratuwa":    3,
	"Ratmalana|Galle":       105,
	"Moratuwa|Galle":        100,
	"Moratuwa|Matara":       143,
	"Gampaha|Negombo":       10,
	"Gampaha|Kandy":         95,
	"Gampaha|Kurunegala":    65,
	"Negombo|Kandy":         103,
	"Negombo|Kurunegala":    60,
	"Kandy|Kurunegala":      44,
	"Kandy|Galle":           185,
	"Galle|Matara":          42,
}
