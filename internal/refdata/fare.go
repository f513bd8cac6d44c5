package refdata

import (
	"fmt"
	"strconv"
	"strings"
)

// fareModeNames translates a commercial brand name into the category the fare
// table records. Modes without a translation have no fare rows at all.
var fareModeNames = map[string]string{
	"TGV INOUI":  "TGV",
	"Intercités": "Intercité",
}

// ResolveFare returns the best-known second- and first-class fares for a leg
// between the two named stations on the given commercial mode. Both fares
// default to 0 when unknown.
//
// Matching rules, inherited from how the public dataset is encoded:
//   - a row's origin must equal one of the origin station's aliases,
//     case-insensitively;
//   - a row's destination must have one of the destination station's aliases
//     as a prefix (destinations are recorded as zones, so matching is looser);
//   - the row's mode must equal the translated commercial mode.
//
// When several rows match, the row with the minimum second-class fare wins;
// ties go to the first row in (sorted-key) dataset order. Non-numeric fares
// coerce to 0; if every matching row has a non-numeric second-class fare the
// result is (0, 0).
func (s *Store) ResolveFare(origin, destination, mode string) (second, first float64, err error) {
	d, err := s.snapshot()
	if err != nil {
		return 0, 0, fmt.Errorf("refdata.Store.ResolveFare: %w", err)
	}

	rows := d.matchRows(origin, destination, mode)

	switch len(rows) {
	case 0:
		return 0, 0, nil
	case 1:
		second, _ = parseFare(rows[0].ClassSecond)
		first, _ = parseFare(rows[0].ClassFirst)
		return second, first, nil
	}

	best := FareRow{}
	bestFare := 0.0
	found := false
	for _, r := range rows {
		f, ok := parseFare(r.ClassSecond)
		if !ok {
			continue
		}
		if !found || f < bestFare {
			best, bestFare, found = r, f, true
		}
	}
	if !found {
		return 0, 0, nil
	}

	first, _ = parseFare(best.ClassFirst)
	return bestFare, first, nil
}

// matchRows collects the fare rows connecting the two stations on the given
// mode, in deterministic dataset order.
func (d *dataset) matchRows(origin, destination, mode string) []FareRow {
	fareMode, ok := fareModeNames[mode]
	if !ok {
		return nil
	}

	originStation, ok := d.station(origin)
	if !ok {
		return nil
	}
	destStation, _ := d.station(destination)

	var rows []FareRow
	for _, k := range d.fareKeys {
		r := d.fares[k]
		if r.Mode != fareMode || !originStation.HasServiceName(r.Origin) {
			continue
		}
		for _, dest := range destStation.ServiceNames {
			if strings.HasPrefix(r.Destination, dest) {
				rows = append(rows, r)
				break
			}
		}
	}
	return rows
}

// parseFare coerces a fare-table value to a float. The empty string counts as
// a valid 0 (absence = free/unknown); anything non-numeric is invalid.
func parseFare(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
