// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

import "strconv"

// Injury-related fields the CAROL export is known to carry. Everything else
// in a record is opaque to the stats pass.
const (
	fieldFatalInjuryCount   = "cm_fatalInjuryCount"
	fieldSeriousInjuryCount = "cm_seriousInjuryCount"
	fieldMinorInjuryCount   = "cm_minorInjuryCount"
	fieldState              = "cm_state"
	fieldHighestInjury      = "cm_highestInjury"
)

// unknownBucket groups records whose state or highest-injury field is
// missing, null, or empty.
const unknownBucket = "Unknown"

// StatsTotals carries the aggregate counters for a record set. Every record
// contributes to accidents and to exactly one of the four severity buckets.
type StatsTotals struct {
	Accidents              int `json:"accidents"`
	FatalAccidents         int `json:"fatal_accidents"`
	SeriousInjuryAccidents int `json:"serious_injury_accidents"`
	MinorInjuryAccidents   int `json:"minor_injury_accidents"`
	NoInjuryAccidents      int `json:"no_injury_accidents"`
	Fatalities             int `json:"fatalities"`
	SeriousInjuries        int `json:"serious_injuries"`
	MinorInjuries          int `json:"minor_injuries"`
}

// StatsResult is the aggregate statistics payload for a record set.
type StatsResult struct {
	Totals          StatsTotals    `json:"totals"`
	ByState         map[string]int `json:"by_state"`
	ByHighestInjury map[string]int `json:"by_highest_injury"`
}

// Stats aggregates a record set in a single pass. Missing or null injury
// counts coerce to 0. Each record lands in exactly one severity bucket,
// chosen by precedence fatal > serious > minor > none: a crash with both
// fatal and serious injuries counts only as a fatal accident.
func Stats(records []Record) StatsResult {
	result := StatsResult{
		ByState:         make(map[string]int),
		ByHighestInjury: make(map[string]int),
	}

	for _, record := range records {
		result.Totals.Accidents++

		fatal := intField(record, fieldFatalInjuryCount)
		serious := intField(record, fieldSeriousInjuryCount)
		minor := intField(record, fieldMinorInjuryCount)

		result.Totals.Fatalities += fatal
		result.Totals.SeriousInjuries += serious
		result.Totals.MinorInjuries += minor

		switch {
		case fatal > 0:
			result.Totals.FatalAccidents++
		case serious > 0:
			result.Totals.SeriousInjuryAccidents++
		case minor > 0:
			result.Totals.MinorInjuryAccidents++
		default:
			result.Totals.NoInjuryAccidents++
		}

		result.ByState[stringField(record, fieldState)]++
		result.ByHighestInjury[stringField(record, fieldHighestInjury)]++
	}

	return result
}

// intField reads a numeric field, coercing decoded JSON kinds to int and
// treating anything unusable as 0.
func intField(record Record, field string) int {
	switch v := record[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return 0
	default:
		return 0
	}
}

// stringField reads a grouping field, bucketing missing, null, or empty
// values as "Unknown".
func stringField(record Record, field string) string {
	if s, ok := record[field].(string); ok && s != "" {
		return s
	}
	return unknownBucket
}
